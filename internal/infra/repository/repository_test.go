package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/totegamma/agenda/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

var contactColumns = []string{"id", "name", "email", "phone", "company", "role", "c_date", "m_date"}

func TestContactSelectByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow(id.String(), "Alice", "alice@example.com", "(11) 98888-7777", "ACME", "CTO", now, now))

	got, err := repo.SelectByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "CTO", got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSelectByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	_, err := repo.SelectByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactSelectAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "contacts" ORDER BY c_date, id`).
		WillReturnRows(sqlmock.NewRows(contactColumns).
			AddRow(uuid.NewString(), "Alice", "alice@example.com", "(11) 98888-7777", "", "", now, now).
			AddRow(uuid.NewString(), "Bob", "bob@example.com", "(11) 98888-6666", "", "", now, now))

	got, err := repo.SelectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`DELETE FROM "contacts" WHERE "contacts"."id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), domain.NewContact("Alice", "", "", "", ""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`DELETE FROM "contacts" WHERE "contacts"."id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), domain.NewContact("Alice", "", "", "", ""))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategorySelectManyKeepsRequestOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	food, travel := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE id IN \(\$1,\$2,\$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "c_date", "m_date"}).
			AddRow(food.String(), "Food", now, now).
			AddRow(travel.String(), "Travel", now, now))

	got, err := repo.SelectMany(context.Background(), []uuid.UUID{travel, uuid.New(), food})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Travel", got[0].Title)
	assert.Equal(t, "Food", got[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategorySelectManyEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	got, err := repo.SelectMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactInsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`INSERT INTO "contacts"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), domain.NewContact("Alice", "alice@example.com", "(11) 98888-7777", "", ""))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactInsertDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`INSERT INTO "contacts"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	c := domain.NewContact("Alice", "alice@example.com", "(11) 98888-7777", "", "")
	err := repo.Insert(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, domain.DuplicateError{Entity: "contact", ID: c.ID}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactInsertFault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`INSERT INTO "contacts"`).
		WillReturnError(errors.New("connection reset"))

	err := repo.Insert(context.Background(), domain.NewContact("Alice", "", "", "", ""))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE "contacts" SET .* WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), domain.NewContact("Alice", "", "", "", ""))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactUpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE "contacts" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), domain.NewContact("Alice", "", "", "", ""))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newExpense(categories ...domain.Category) domain.Expense {
	ids := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	e := domain.NewExpense("Lunch", decimal.RequireFromString("25.90"), time.Now(), domain.PaymentMethodDebit, ids)
	e.Categories = categories
	return e
}

func TestExpenseInsertLinksCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectExec(`INSERT INTO "expenses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "expense_categories"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), newExpense(domain.NewCategory("Food")))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseInsertDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectExec(`INSERT INTO "expenses"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	e := newExpense()
	err := repo.Insert(context.Background(), e)
	assert.Equal(t, domain.DuplicateError{Entity: "expense", ID: e.ID}, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseUpdateCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expenses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "expense_categories" WHERE "expense_categories"."expense_id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), newExpense())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseUpdateMissingRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expenses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), newExpense())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseUpdateLinkFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "expenses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "expense_categories"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), newExpense())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseCountByCategory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExpenseRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "expense_categories" WHERE category_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByCategory(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
