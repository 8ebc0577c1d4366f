package books

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewSQLiteDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestRepository_CreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	book := &entities.Book{Title: "Neuromancer", Author: "William Gibson", Genre: "Science Fiction", Available: true}
	require.NoError(t, repo.Create(book))
	assert.NotZero(t, book.BookID)

	stored, err := repo.GetByID(book.BookID)
	require.NoError(t, err)
	assert.Equal(t, "Neuromancer", stored.Title)
	assert.Equal(t, "William Gibson", stored.Author)
	assert.True(t, stored.Available)

	_, err = repo.GetByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_CreatePersistsUnavailable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	// A column default would swallow the false here on insert.
	book := &entities.Book{Title: "Checked Out", Author: "Author", Genre: "Fiction", Available: false}
	require.NoError(t, repo.Create(book))

	stored, err := repo.GetByID(book.BookID)
	require.NoError(t, err)
	assert.False(t, stored.Available)
}

func TestRepository_GetAvailable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	require.NoError(t, repo.Create(&entities.Book{Title: "A", Author: "X", Genre: "Fiction", Available: true}))
	require.NoError(t, repo.Create(&entities.Book{Title: "B", Author: "Y", Genre: "Fiction", Available: false}))

	available, err := repo.GetAvailable()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "A", available[0].Title)
}

func TestRepository_GetByGenre(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	require.NoError(t, repo.Create(&entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: true}))
	require.NoError(t, repo.Create(&entities.Book{Title: "Emma", Author: "Jane Austen", Genre: "Romance", Available: true}))

	t.Run("matches ignoring case", func(t *testing.T) {
		books, err := repo.GetByGenre("science fiction")
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("no partial matches", func(t *testing.T) {
		books, err := repo.GetByGenre("science")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("unknown genre yields empty list", func(t *testing.T) {
		books, err := repo.GetByGenre("Horror")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	book := &entities.Book{Title: "Old Title", Author: "Author", Genre: "Fiction", Available: true}
	require.NoError(t, repo.Create(book))

	t.Run("overwrites all editable fields", func(t *testing.T) {
		book.Title = "New Title"
		book.Available = false
		require.NoError(t, repo.Update(book))

		stored, err := repo.GetByID(book.BookID)
		require.NoError(t, err)
		assert.Equal(t, "New Title", stored.Title)
		assert.False(t, stored.Available)
	})

	t.Run("missing row reports record-not-found", func(t *testing.T) {
		err := repo.Update(&entities.Book{BookID: 9999, Title: "T", Author: "A", Genre: "G"})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	book := &entities.Book{Title: "Ephemeral", Author: "Author", Genre: "Fiction", Available: true}
	require.NoError(t, repo.Create(book))

	require.NoError(t, repo.Delete(book.BookID))

	_, err := repo.GetByID(book.BookID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(book.BookID), gorm.ErrRecordNotFound)
}
