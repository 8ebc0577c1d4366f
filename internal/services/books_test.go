package services

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/database/books"
	"github.com/mrlokans/library-manager/internal/entities"
)

func setupBookService(t *testing.T) (*BookService, func()) {
	t.Helper()
	dbPath := "./test_book_svc_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewSQLiteDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewBookService(books.NewRepository(db.DB)), cleanup
}

func TestBookService_Create(t *testing.T) {
	t.Run("persists a valid book", func(t *testing.T) {
		service, cleanup := setupBookService(t)
		defer cleanup()

		book := &entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: true}
		require.NoError(t, service.Create(book))
		assert.NotZero(t, book.BookID)
	})

	t.Run("collects all missing fields", func(t *testing.T) {
		service, cleanup := setupBookService(t)
		defer cleanup()

		err := service.Create(&entities.Book{Title: "   "})
		var validation ValidationErrors
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation, "Title")
		assert.Contains(t, validation, "Author")
		assert.Contains(t, validation, "Genre")
	})
}

func TestBookService_Update(t *testing.T) {
	t.Run("path and body ids must match", func(t *testing.T) {
		service, cleanup := setupBookService(t)
		defer cleanup()

		book := &entities.Book{BookID: 2, Title: "T", Author: "A", Genre: "G"}
		assert.ErrorIs(t, service.Update(1, book), ErrIDMismatch)
	})

	t.Run("missing row reads as not found", func(t *testing.T) {
		service, cleanup := setupBookService(t)
		defer cleanup()

		book := &entities.Book{BookID: 9999, Title: "T", Author: "A", Genre: "G"}
		assert.ErrorIs(t, service.Update(9999, book), ErrNotFound)
	})

	t.Run("persists changes", func(t *testing.T) {
		service, cleanup := setupBookService(t)
		defer cleanup()

		book := &entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: true}
		require.NoError(t, service.Create(book))

		book.Genre = "Classic"
		require.NoError(t, service.Update(book.BookID, book))

		stored, err := service.GetByID(book.BookID)
		require.NoError(t, err)
		assert.Equal(t, "Classic", stored.Genre)
	})
}

func TestBookService_ListDtos(t *testing.T) {
	service, cleanup := setupBookService(t)
	defer cleanup()

	require.NoError(t, service.Create(&entities.Book{Title: "A", Author: "X", Genre: "Fiction", Available: true}))

	borrowed := &entities.Book{Title: "B", Author: "Y", Genre: "Fiction", Available: true}
	require.NoError(t, service.Create(borrowed))
	borrowed.Available = false
	require.NoError(t, service.Update(borrowed.BookID, borrowed))

	dtos, err := service.ListDtos()
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, entities.StatusAvailable, dtos[0].Status)
	assert.Equal(t, entities.StatusBorrowed, dtos[1].Status)
}

func TestBookService_Delete(t *testing.T) {
	service, cleanup := setupBookService(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: true}
	require.NoError(t, service.Create(book))

	require.NoError(t, service.Delete(book.BookID))
	assert.ErrorIs(t, service.Delete(book.BookID), ErrNotFound)

	_, err := service.GetByID(book.BookID)
	assert.ErrorIs(t, err, ErrNotFound)
}
