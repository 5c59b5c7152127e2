package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"estately/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func approved() *models.PropertyStatus {
	return ptr(models.PropertyStatusApproved)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%pune%", containsPattern("PuNe"))
	assert.Equal(t, `%50\% off%`, containsPattern("50% off"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, containsPattern(`c:\d`))
}

func TestPropertyQuery_OffsetAndFingerprint(t *testing.T) {
	q := PropertyQuery{Status: approved(), City: "Pune", Page: 3, Limit: 10}
	assert.Equal(t, 20, q.Offset())
	assert.Equal(t, 0, PropertyQuery{Page: 0, Limit: 10}.Offset())
	assert.Equal(t, math.MaxInt, PropertyQuery{Page: math.MaxInt, Limit: 100}.Offset())

	same := PropertyQuery{Status: approved(), City: "Pune", Page: 3, Limit: 10}
	assert.Equal(t, q.Fingerprint(), same.Fingerprint())

	withFurnished := same
	withFurnished.Furnished = ptr(false)
	assert.NotEqual(t, q.Fingerprint(), withFurnished.Fingerprint())

	sorted := same
	sorted.Sort = SortPriceAsc
	assert.NotEqual(t, q.Fingerprint(), sorted.Fingerprint())
}

func TestPropertyRepository_SearchSQLShape(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPropertyRepository(db)

	q := PropertyQuery{
		Status:   approved(),
		Search:   "50% off",
		MinPrice: ptr(20000.0),
		Sort:     SortPriceAsc,
		Page:     2,
		Limit:    1,
	}

	mock.ExpectQuery(`SELECT count\(\*\) FROM "properties" WHERE status = \$1 AND \(\(LOWER\(title\) LIKE \$2 ESCAPE .+ OR LOWER\(city\) LIKE \$3 .+ OR LOWER\(address\) LIKE \$4 ESCAPE '\\'\)\) AND price >= \$5`).
		WithArgs("APPROVED", `%50\% off%`, `%50\% off%`, `%50\% off%`, 20000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "properties" WHERE status = \$1 .+ ORDER BY price ASC, id ASC LIMIT \$6 OFFSET \$7`).
		WithArgs("APPROVED", `%50\% off%`, `%50\% off%`, `%50\% off%`, 20000.0, 1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "owner_id", "status"}).
			AddRow(9, "Villa 50% off", 32000, 4, "APPROVED"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(4, "Owner", "owner@example.com"))

	page, err := repo.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Properties, 1)
	require.NotNil(t, page.Properties[0].Owner)
	assert.Equal(t, "owner@example.com", page.Properties[0].Owner.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_SearchEmptySkipsPageQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPropertyRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "properties"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.Search(context.Background(), PropertyQuery{Status: approved(), Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.NotNil(t, page.Properties)
	assert.Empty(t, page.Properties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_DeleteCascadeCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPropertyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "wishlists" WHERE property_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "inquiries" WHERE property_id = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "properties" WHERE "properties"."id" = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_DeleteCascadeRollsBack(t *testing.T) {
	t.Run("missing property", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPropertyRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "wishlists"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "inquiries"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "properties"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.DeleteCascade(context.Background(), 404)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inquiry delete fails", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPropertyRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "wishlists"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "inquiries"`).WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err := repo.DeleteCascade(context.Background(), 5)
		assert.True(t, models.IsCode(err, models.CodeInternal))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPropertyRepository_DeleteCascadeOnSQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner", models.RoleOwner)
	buyer := createUser(t, db, "buyer", models.RoleUser)
	doomed := createProperty(t, db, owner.ID, nil)
	kept := createProperty(t, db, owner.ID, nil)

	require.NoError(t, db.Create(&models.Wishlist{UserID: buyer.ID, PropertyID: doomed.ID}).Error)
	require.NoError(t, db.Create(&models.Wishlist{UserID: buyer.ID, PropertyID: kept.ID}).Error)
	require.NoError(t, db.Create(&models.Inquiry{UserID: buyer.ID, PropertyID: doomed.ID, Message: "hi"}).Error)

	require.NoError(t, repo.DeleteCascade(ctx, doomed.ID))

	var n int64
	db.Model(&models.Wishlist{}).Where("property_id = ?", doomed.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Inquiry{}).Where("property_id = ?", doomed.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Wishlist{}).Count(&n)
	assert.Equal(t, int64(1), n)

	_, err := repo.GetByID(ctx, doomed.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestPropertyRepository_SearchOnSQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner", models.RoleOwner)
	createProperty(t, db, owner.ID, func(p *models.Property) { p.Title = "100% Sea View"; p.City = "Mumbai"; p.Price = 90000 })
	createProperty(t, db, owner.ID, func(p *models.Property) { p.Title = "1005 Sea View"; p.City = "Mumbai"; p.Price = 80000 })
	createProperty(t, db, owner.ID, func(p *models.Property) { p.Address = "Koregaon Park"; p.Furnished = true })
	createProperty(t, db, owner.ID, func(p *models.Property) { p.City = "PUNE"; p.Status = models.PropertyStatusPending })

	page, err := repo.Search(ctx, PropertyQuery{Status: approved(), Search: "100%", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "100% Sea View", page.Properties[0].Title)

	page, err = repo.Search(ctx, PropertyQuery{Status: approved(), Search: "koregaon", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = repo.Search(ctx, PropertyQuery{Status: approved(), City: "pune", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total, "pending listing must not match")

	page, err = repo.Search(ctx, PropertyQuery{Status: approved(), Furnished: ptr(false), Sort: SortPriceDesc, Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
	assert.Equal(t, 90000.0, page.Properties[0].Price)
	require.NotNil(t, page.Properties[0].Owner)
	assert.Equal(t, owner.Email, page.Properties[0].Owner.Email)

	all, err := repo.ListByStatus(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	pending, err := repo.CountByStatus(ctx, models.PropertyStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	mine, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}

func TestPropertyRepository_UpdateMissing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewPropertyRepository(db)

	err := repo.UpdateStatus(context.Background(), 12345, models.PropertyStatusApproved)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.NoError(t, repo.Update(context.Background(), 12345, nil), "empty change set is a no-op")
}
