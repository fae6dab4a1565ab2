package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// BooksMapping is applied when the books index is first created.
const BooksMapping = `{
  "mappings": {
    "properties": {
      "id":               {"type": "keyword"},
      "bookName":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "authorName":       {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "genre":            {"type": "text"},
      "bookDescription":  {"type": "text"},
      "coverImage":       {"type": "keyword", "index": false},
      "pdf":              {"type": "keyword", "index": false},
      "uploadedByUserId": {"type": "keyword"},
      "uploadedAt":       {"type": "date"}
    }
  }
}`

type bookDoc struct {
	ID               string    `json:"id"`
	BookName         string    `json:"bookName"`
	AuthorName       string    `json:"authorName"`
	Genre            string    `json:"genre"`
	BookDescription  string    `json:"bookDescription"`
	CoverImage       string    `json:"coverImage"`
	PDF              string    `json:"pdf"`
	UploadedByUserID string    `json:"uploadedByUserId"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func toDoc(b entity.Book) bookDoc {
	return bookDoc{
		ID:               b.ID,
		BookName:         b.BookName,
		AuthorName:       b.AuthorName,
		Genre:            b.Genre,
		BookDescription:  b.BookDescription,
		CoverImage:       b.CoverImage,
		PDF:              b.PDF,
		UploadedByUserID: b.UploadedByUserID,
		UploadedAt:       b.UploadedAt,
	}
}

func (d bookDoc) entity() entity.Book {
	return entity.Book{
		ID:               d.ID,
		BookName:         d.BookName,
		AuthorName:       d.AuthorName,
		Genre:            d.Genre,
		BookDescription:  d.BookDescription,
		CoverImage:       d.CoverImage,
		PDF:              d.PDF,
		UploadedByUserID: d.UploadedByUserID,
		UploadedAt:       d.UploadedAt,
	}
}

// BookIndex keeps a searchable copy of the catalog in Elasticsearch.
type BookIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewBookIndex(es *elasticsearch.Client, index string) *BookIndex {
	return &BookIndex{es: es, index: index}
}

// EnsureIndex creates the index with BooksMapping if needed.
func (i *BookIndex) EnsureIndex(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, i.es, i.index, BooksMapping)
}

func (i *BookIndex) Index(ctx context.Context, b entity.Book) error {
	body, err := json.Marshal(toDoc(b))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.index, DocumentID: b.ID, Body: bytes.NewReader(body), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es index %s: %w", b.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", b.ID, res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (i *BookIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return fmt.Errorf("es delete %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over the text fields, best match first.
func (i *BookIndex) Search(ctx context.Context, q string, size int) ([]entity.Book, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"bookName^2", "authorName^2", "genre", "bookDescription"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(c),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Source bookDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]entity.Book, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		b := h.Source.entity()
		if b.ID == "" {
			b.ID = h.ID
		}
		out = append(out, b)
	}
	return out, nil
}
