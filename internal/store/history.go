package store

import (
	"context"
	"fmt"

	"github.com/safar/northwind-store/internal/models"
)

// CustomerOrderHistory returns per-product quantity totals for a customer,
// aggregated by the cust_order_hist store function.
func (r *OrderRepository) CustomerOrderHistory(ctx context.Context, customerID string) ([]models.CustOrderHist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_name, total FROM cust_order_hist($1)`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("customer order history: %w", err)
	}
	defer rows.Close()

	history := make([]models.CustOrderHist, 0)
	for rows.Next() {
		var h models.CustOrderHist
		if err := rows.Scan(&h.ProductName, &h.Total); err != nil {
			return nil, fmt.Errorf("scan customer order history: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return history, nil
}

func (r *OrderRepository) CustomerOrderDetail(ctx context.Context, orderID int64) ([]models.CustOrdersDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_name, unit_price, quantity, discount, extended_price
		 FROM cust_orders_detail($1)`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("customer order detail: %w", err)
	}
	defer rows.Close()

	details := make([]models.CustOrdersDetail, 0)
	for rows.Next() {
		var d models.CustOrdersDetail
		err := rows.Scan(
			&d.ProductName,
			&d.UnitPrice,
			&d.Quantity,
			&d.Discount,
			&d.ExtendedPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan customer order detail: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return details, nil
}
