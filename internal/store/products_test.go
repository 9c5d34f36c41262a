package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/northwind-store/internal/database"
)

func newCatalogRepo(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewCatalogRepository(db), mock
}

func TestGetProduct(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(`SELECT product_id, product_name, .+ FROM products WHERE product_id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(11), "Queso Cabrales", "1 kg pkg.", "21.00", int64(22), int64(30), nil, false))

	product, err := repo.GetProduct(context.Background(), 11)
	require.NoError(t, err)

	assert.Equal(t, "Queso Cabrales", product.ProductName)
	require.NotNil(t, product.UnitPrice)
	assert.Equal(t, "21", product.UnitPrice.String())
	require.NotNil(t, product.UnitsInStock)
	assert.Equal(t, int16(22), *product.UnitsInStock)
	assert.Nil(t, product.ReorderLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductNotFound(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(`FROM products`).WillReturnRows(sqlmock.NewRows(productColumns))

	product, err := repo.GetProduct(context.Background(), 999)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, database.ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(`FROM products ORDER BY product_id`).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(2), "Chang", "24 - 12 oz bottles", "19.00", int64(17), int64(40), int64(25), false).
			AddRow(int64(42), "Singaporean Hokkien Fried Mee", nil, nil, nil, nil, nil, true))

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ProductID)
	assert.True(t, products[1].Discontinued)
	assert.Equal(t, "", products[1].QuantityPerUnit)
	assert.Nil(t, products[1].UnitPrice)
}

func TestListShippers(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(`SELECT shipper_id, company_name, phone\s+FROM shippers`).
		WillReturnRows(sqlmock.NewRows([]string{"shipper_id", "company_name", "phone"}).
			AddRow(int64(1), "Speedy Express", "(503) 555-9831").
			AddRow(int64(2), "United Package", nil))

	shippers, err := repo.ListShippers(context.Background())
	require.NoError(t, err)
	require.Len(t, shippers, 2)
	assert.Equal(t, "Speedy Express", shippers[0].CompanyName)
	assert.Equal(t, "", shippers[1].Phone)
}

func TestListTerritories(t *testing.T) {
	repo, mock := newCatalogRepo(t)

	mock.ExpectQuery(`FROM territories t\s+JOIN region r`).
		WillReturnRows(sqlmock.NewRows([]string{"territory_id", "territory_description", "region_id", "region_description"}).
			AddRow("01581", "Westboro", int64(1), "Eastern").
			AddRow("98104", "Seattle", int64(2), "Western"))

	territories, err := repo.ListTerritories(context.Background())
	require.NoError(t, err)
	require.Len(t, territories, 2)
	assert.Equal(t, int64(2), territories[1].RegionID)
	assert.Equal(t, "Western", territories[1].Region.RegionDescription)
	assert.NoError(t, mock.ExpectationsWereMet())
}
