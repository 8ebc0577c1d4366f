package members

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := "./test_members_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
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

	member := &entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "+1 555 0100"}
	require.NoError(t, repo.Create(member))
	assert.NotZero(t, member.MemberID)

	stored, err := repo.GetByID(member.MemberID, false)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.FullName())
	assert.Empty(t, stored.BorrowingRecords)

	_, err = repo.GetByID(9999, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetByIDWithBorrowings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	member := &entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "+1 555 0100"}
	require.NoError(t, repo.Create(member))

	book := entities.Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Available: false}
	require.NoError(t, db.DB.Create(&book).Error)

	now := time.Now()
	record := entities.BorrowingRecord{
		BookID:     book.BookID,
		MemberID:   member.MemberID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, 15),
	}
	require.NoError(t, db.DB.Create(&record).Error)

	stored, err := repo.GetByID(member.MemberID, true)
	require.NoError(t, err)
	require.Len(t, stored.BorrowingRecords, 1)
	assert.Equal(t, "Dune", stored.BorrowingRecords[0].Book.Title)
}

func TestRepository_Update(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	member := &entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "+1 555 0100"}
	require.NoError(t, repo.Create(member))

	member.Email = "jane.doe@example.com"
	require.NoError(t, repo.Update(member))

	stored, err := repo.GetByID(member.MemberID, false)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", stored.Email)

	err = repo.Update(&entities.Member{MemberID: 9999, FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository(db.DB)

	member := &entities.Member{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "+1 555 0100"}
	require.NoError(t, repo.Create(member))

	require.NoError(t, repo.Delete(member.MemberID))
	_, err := repo.GetByID(member.MemberID, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(member.MemberID), gorm.ErrRecordNotFound)
}
