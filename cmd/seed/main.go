package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/bookshare/config"
	"github.com/oksasatya/bookshare/internal/domain/entity"
	"github.com/oksasatya/bookshare/internal/domain/repository"
	"github.com/oksasatya/bookshare/internal/infrastructure/postgres"
	"github.com/oksasatya/bookshare/pkg/helpers"
)

// Demo records point at public-domain scans so the seed needs no object store.
var demoBooks = []entity.Book{
	{
		BookName:        "Pride and Prejudice",
		AuthorName:      "Jane Austen",
		Genre:           "Romance",
		BookDescription: "Elizabeth Bennet and Mr. Darcy.",
		PDF:             "https://www.gutenberg.org/files/1342/old/pandp12p.pdf",
	},
	{
		BookName:   "The Time Machine",
		AuthorName: "H. G. Wells",
		Genre:      "Science Fiction",
		PDF:        "https://www.gutenberg.org/files/35/old/tmach10p.pdf",
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	books := postgres.NewBookRepository(pool)

	email := "demo@bookshare.local"
	password := "password123"
	name := "Demo Reader"

	user, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		fmt.Printf("user exists: id=%s email=%s\n", user.ID, user.Email)
	case errors.Is(err, repository.ErrNotFound):
		hash, herr := helpers.HashPassword(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		user = &entity.User{Email: email, Password: hash, DisplayName: name}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", user.ID, email, name, password)
	default:
		log.Fatalf("failed to look up user: %v", err)
	}

	for _, b := range demoBooks {
		if _, err := books.FindByNameAndAuthor(ctx, b.BookName, b.AuthorName); err == nil {
			fmt.Printf("book exists: %s by %s\n", b.BookName, b.AuthorName)
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("failed to look up book: %v", err)
		}
		book := b
		book.UploadedByUserID = user.ID
		if err := books.Create(ctx, &book); err != nil {
			log.Fatalf("failed to seed book %q: %v", b.BookName, err)
		}
		fmt.Printf("seeded book: id=%s %s by %s\n", book.ID, book.BookName, book.AuthorName)
	}
}
