package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/northwind-store/internal/models"
)

func TestCustomerOrderHistory(t *testing.T) {
	repo, mock, _ := newOrderRepo(t)

	mock.ExpectQuery(`SELECT product_name, total FROM cust_order_hist\(\$1\)`).
		WithArgs("WELLI").
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "total"}).
			AddRow("Alice Mutton", int64(15)).
			AddRow("Tofu", int64(40)))

	history, err := repo.CustomerOrderHistory(context.Background(), "WELLI")
	require.NoError(t, err)
	assert.Equal(t, []models.CustOrderHist{
		{ProductName: "Alice Mutton", Total: 15},
		{ProductName: "Tofu", Total: 40},
	}, history)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerOrderHistoryUnknownCustomer(t *testing.T) {
	repo, mock, _ := newOrderRepo(t)

	mock.ExpectQuery(`FROM cust_order_hist`).
		WithArgs("-1").
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "total"}))

	history, err := repo.CustomerOrderHistory(context.Background(), "-1")
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestCustomerOrderDetail(t *testing.T) {
	repo, mock, _ := newOrderRepo(t)

	mock.ExpectQuery(`SELECT product_name, unit_price, quantity, discount, extended_price\s+FROM cust_orders_detail\(\$1\)`).
		WithArgs(int64(10298)).
		WillReturnRows(sqlmock.NewRows([]string{"product_name", "unit_price", "quantity", "discount", "extended_price"}).
			AddRow("Aniseed Syrup", "8.00", int64(40), int64(0), "320.00").
			AddRow("Raclette Courdavault", "44.00", int64(30), int64(25), "990.00"))

	details, err := repo.CustomerOrderDetail(context.Background(), 10298)
	require.NoError(t, err)
	require.Len(t, details, 2)

	assert.Equal(t, "Raclette Courdavault", details[1].ProductName)
	assert.Equal(t, int16(30), details[1].Quantity)
	assert.Equal(t, int32(25), details[1].Discount)
	assert.Equal(t, "990", details[1].ExtendedPrice.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerOrderDetailUnknownOrder(t *testing.T) {
	repo, mock, _ := newOrderRepo(t)

	mock.ExpectQuery(`FROM cust_orders_detail`).
		WithArgs(int64(-1)).
		WillReturnRows(sqlmock.NewRows([]string{"product_name"}))

	details, err := repo.CustomerOrderDetail(context.Background(), -1)
	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}
