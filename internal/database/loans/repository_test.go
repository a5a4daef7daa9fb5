package loans

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

type fixture struct {
	repo    *Repository
	db      *gorm.DB
	student entities.Student
	book    entities.Book
}

func setupTestDB(t *testing.T) fixture {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "loans.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := fixture{
		repo:    NewRepository(db.DB),
		db:      db.DB,
		student: entities.Student{Name: "Asha", Department: "Physics", Year: 2},
		book:    entities.Book{Name: "Dune", Author: "Herbert", Category: "Fiction"},
	}
	require.NoError(t, db.DB.Create(&f.student).Error)
	require.NoError(t, db.DB.Create(&f.book).Error)
	return f
}

func date(y int, m time.Month, d int) *datatypes.Date {
	v := entities.NewDate(y, m, d)
	return &v
}

func (f fixture) newLoan(t *testing.T) *entities.Loan {
	t.Helper()
	loan := &entities.Loan{
		StudentID: f.student.ID,
		BookID:    f.book.ID,
		IssueDate: entities.NewDate(2024, 1, 1),
		DueDate:   date(2024, 1, 10),
	}
	require.NoError(t, f.repo.Create(context.Background(), loan))
	return loan
}

func TestRepository_Create(t *testing.T) {
	f := setupTestDB(t)

	loan := f.newLoan(t)

	assert.NotZero(t, loan.ID)
	stored, err := f.repo.GetByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())
	assert.Zero(t, stored.Fine)
	assert.Equal(t, "2024-01-01", time.Time(stored.IssueDate).Format(entities.DateLayout))
	assert.Equal(t, "2024-01-10", entities.FormatDate(stored.DueDate))
}

func TestRepository_Create_WithoutDueDate(t *testing.T) {
	f := setupTestDB(t)
	loan := &entities.Loan{StudentID: f.student.ID, BookID: f.book.ID, IssueDate: entities.NewDate(2024, 1, 1)}

	require.NoError(t, f.repo.Create(context.Background(), loan))

	stored, err := f.repo.GetByID(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DueDate)
}

func TestRepository_Create_SecondOpenLoanRejected(t *testing.T) {
	f := setupTestDB(t)
	f.newLoan(t)

	err := f.repo.Create(context.Background(), &entities.Loan{
		StudentID: f.student.ID,
		BookID:    f.book.ID,
		IssueDate: entities.NewDate(2024, 2, 1),
	})

	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_UpdateAssignment(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	loan := f.newLoan(t)
	require.NoError(t, f.repo.RecordReturn(ctx, loan.ID, entities.NewDate(2024, 1, 12), 10))

	other := entities.Book{Name: "Cosmos"}
	require.NoError(t, f.db.Create(&other).Error)

	err := f.repo.UpdateAssignment(ctx, loan.ID, f.student.ID, other.ID, entities.NewDate(2024, 1, 2), nil)
	require.NoError(t, err)

	stored, err := f.repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, stored.BookID)
	assert.Equal(t, "2024-01-02", time.Time(stored.IssueDate).Format(entities.DateLayout))
	assert.Nil(t, stored.DueDate)
	assert.Equal(t, "2024-01-12", entities.FormatDate(stored.ReturnDate), "return date untouched")
	assert.Equal(t, 10.0, stored.Fine, "fine untouched")

	err = f.repo.UpdateAssignment(ctx, 999, f.student.ID, other.ID, entities.NewDate(2024, 1, 2), nil)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_RecordReturn(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	loan := f.newLoan(t)

	require.NoError(t, f.repo.RecordReturn(ctx, loan.ID, entities.NewDate(2024, 1, 15), 25))

	stored, err := f.repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsOpen())
	assert.Equal(t, "2024-01-15", entities.FormatDate(stored.ReturnDate))
	assert.Equal(t, 25.0, stored.Fine)

	assert.ErrorIs(t, f.repo.RecordReturn(ctx, 999, entities.NewDate(2024, 1, 15), 0), database.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	first := f.newLoan(t)
	require.NoError(t, f.repo.RecordReturn(ctx, first.ID, entities.NewDate(2024, 1, 9), 0))
	second := f.newLoan(t)

	views, err := f.repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID)
	assert.Equal(t, second.ID, views[1].ID)
	assert.Equal(t, "Asha", views[0].StudentName)
	assert.Equal(t, "Dune", views[0].BookName)
	assert.False(t, views[0].IsOpen())
	assert.True(t, views[1].IsOpen())
}

func TestRepository_List_HidesOrphanedLoans(t *testing.T) {
	t.Run("deleted student", func(t *testing.T) {
		f := setupTestDB(t)
		f.newLoan(t)
		require.NoError(t, f.db.Delete(&entities.Student{}, f.student.ID).Error)

		views, err := f.repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("deleted book", func(t *testing.T) {
		f := setupTestDB(t)
		loan := f.newLoan(t)
		require.NoError(t, f.db.Delete(&entities.Book{}, f.book.ID).Error)

		views, err := f.repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, views)

		_, err = f.repo.GetByID(context.Background(), loan.ID)
		assert.NoError(t, err, "the row itself still exists")
	})
}

func TestRepository_GetView(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	loan := f.newLoan(t)

	view, err := f.repo.GetView(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.ID, view.ID)
	assert.Equal(t, "Asha", view.StudentName)
	assert.Equal(t, "Dune", view.BookName)
	assert.Equal(t, "2024-01-10", entities.FormatDate(view.DueDate))

	_, err = f.repo.GetView(ctx, 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	loan := f.newLoan(t)

	require.NoError(t, f.repo.Delete(ctx, loan.ID))

	_, err := f.repo.GetByID(ctx, loan.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, f.repo.Delete(ctx, loan.ID), database.ErrNotFound)
}

func TestRepository_ReadErrorsAreNotNotFound(t *testing.T) {
	f := setupTestDB(t)
	ctx := context.Background()
	loan := f.newLoan(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.repo.GetView(ctx, loan.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, database.ErrNotFound)

	views, err := f.repo.List(ctx)
	require.Error(t, err)
	assert.Nil(t, views)
}
