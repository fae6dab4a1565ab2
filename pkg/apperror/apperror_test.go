package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:      http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.Status(), kind.String())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	orig := Conflict("a book with this name and author already exists").WithReason(ReasonDuplicateBook)
	wrapped := fmt.Errorf("submit: %w", orig)

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, ReasonDuplicateBook, ReasonOf(wrapped))
	assert.Equal(t, http.StatusConflict, KindOf(wrapped).Status())
}

func TestPlainErrorIsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Empty(t, ReasonOf(cause))

	err := Internal("failed to list books", cause)
	ae, ok := As(fmt.Errorf("list: %w", err))
	require.True(t, ok)
	assert.Equal(t, "failed to list books", ae.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWithDetailsCopies(t *testing.T) {
	base := BadRequest("missing required fields")
	withDetails := base.WithDetails([]string{"bookName"})
	assert.Nil(t, base.Details)
	assert.Equal(t, []string{"bookName"}, withDetails.Details)
}
