package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	log "github.com/sirupsen/logrus"

	"github.com/safar/northwind-store/internal/database"
	"github.com/safar/northwind-store/internal/models"
)

// OrderRepository reads and mutates orders. Operations that fail a status
// or existence check return a nil order together with one of the sentinel
// errors accepted by database.IsAbsent.
type OrderRepository struct {
	db     database.DB
	sb     sq.StatementBuilderType
	logger *log.Entry
}

func NewOrderRepository(db database.DB, logger *log.Entry) *OrderRepository {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	return &OrderRepository{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger.WithField("component", "order_repository"),
	}
}

func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).From("orders").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}

// GetDetail returns the order with its line items and the products they
// reference.
func (r *OrderRepository) GetDetail(ctx context.Context, id int64) (*models.Order, error) {
	order, err := r.getOrder(ctx, r.db, id, false)
	if err != nil {
		return nil, err
	}

	query, args, err := r.sb.
		Select(
			"od.order_id",
			"od.unit_price",
			"od.quantity",
			"od.discount",
			"p.product_id",
			"p.product_name",
			"p.quantity_per_unit",
			"p.unit_price",
			"p.units_in_stock",
			"p.units_on_order",
			"p.reorder_level",
			"p.discontinued",
		).
		From("order_details od").
		Join("products p ON p.product_id = od.product_id").
		Where(sq.Eq{"od.order_id": id}).
		OrderBy("od.product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order lines: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	order.Details = make([]models.OrderDetail, 0)
	order.Products = make([]models.Product, 0)
	for rows.Next() {
		line, product, err := scanOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Details = append(order.Details, line)
		order.Products = append(order.Products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return order, nil
}

// Add inserts order without any dates, so it starts out Created. If the
// generated identity cannot be parsed the insert is rolled back.
func (r *OrderRepository) Add(ctx context.Context, order models.Order) (*models.Order, error) {
	query, args, err := r.sb.
		Insert("orders").
		Columns(
			"customer_id",
			"employee_id",
			"ship_via",
			"freight",
			"ship_name",
			"ship_address",
			"ship_city",
			"ship_region",
			"ship_postal_code",
			"ship_country",
		).
		Values(
			order.CustomerID,
			order.EmployeeID,
			order.ShipVia,
			order.Freight,
			order.ShipName,
			order.ShipAddress,
			order.ShipCity,
			order.ShipRegion,
			order.ShipPostalCode,
			order.ShipCountry,
		).
		Suffix("RETURNING order_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert order: %w", err)
	}

	var created *models.Order
	err = database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		var rawID sql.NullString
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&rawID); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		id, err := strconv.ParseInt(rawID.String, 10, 64)
		if err != nil || !rawID.Valid {
			r.logger.WithField("raw_id", rawID.String).Warn("discarding insert with unparsable order id")
			return database.ErrInvalidOrderID
		}

		o := order
		o.OrderID = id
		o.OrderDate, o.RequiredDate, o.ShippedDate = nil, nil, nil
		o.Details, o.Products = nil, nil
		o.Status = models.DeriveStatus(o.OrderDate, o.ShippedDate)
		created = &o

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.WithField("order_id", created.OrderID).Debug("order created")

	return created, nil
}

// SetInWork writes the order and required dates regardless of the current
// status. Dates are stored as UTC wall clock, so any offset is folded in
// before the write.
func (r *OrderRepository) SetInWork(ctx context.Context, id int64, orderDate, requiredDate time.Time) (*models.Order, error) {
	query, args, err := r.sb.
		Update("orders").
		Set("order_date", orderDate.UTC()).
		Set("required_date", requiredDate.UTC()).
		Where(sq.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set order in work: %w", err)
	}

	return r.setDates(ctx, id, query, args)
}

// SetFinished writes the shipped date regardless of the current status.
func (r *OrderRepository) SetFinished(ctx context.Context, id int64, shippedDate time.Time) (*models.Order, error) {
	query, args, err := r.sb.
		Update("orders").
		Set("shipped_date", shippedDate.UTC()).
		Where(sq.Eq{"order_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build set order finished: %w", err)
	}

	return r.setDates(ctx, id, query, args)
}

func (r *OrderRepository) setDates(ctx context.Context, id int64, query string, args []any) (*models.Order, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update order dates: %w", err)
	}

	if err := expectSingleRow(result); err != nil {
		return nil, err
	}

	return r.getOrder(ctx, r.db, id, false)
}

// Update overwrites the customer, employee and shipping fields of an order
// that is still Created. Identity and dates are never written.
func (r *OrderRepository) Update(ctx context.Context, order models.Order) (*models.Order, error) {
	var updated *models.Order

	err := database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		current, err := r.getOrder(ctx, tx, order.OrderID, true)
		if err != nil {
			return err
		}

		if status := models.DeriveStatus(current.OrderDate, current.ShippedDate); status != models.StatusCreated {
			r.logger.WithFields(log.Fields{
				"order_id": order.OrderID,
				"status":   status.String(),
			}).Debug("update rejected")
			return fmt.Errorf("%w: order %d is %s", database.ErrOrderNotEditable, order.OrderID, status)
		}

		query, args, err := r.sb.
			Update("orders").
			Set("customer_id", order.CustomerID).
			Set("employee_id", order.EmployeeID).
			Set("ship_via", order.ShipVia).
			Set("freight", order.Freight).
			Set("ship_name", order.ShipName).
			Set("ship_address", order.ShipAddress).
			Set("ship_city", order.ShipCity).
			Set("ship_region", order.ShipRegion).
			Set("ship_postal_code", order.ShipPostalCode).
			Set("ship_country", order.ShipCountry).
			Where(sq.Eq{"order_id": order.OrderID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update order: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if err := expectSingleRow(result); err != nil {
			return err
		}

		updated, err = r.getOrder(ctx, tx, order.OrderID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an order that is not Finished and returns the row as it
// was before deletion.
func (r *OrderRepository) Delete(ctx context.Context, id int64) (*models.Order, error) {
	var deleted *models.Order

	err := database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		current, err := r.getOrder(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if models.DeriveStatus(current.OrderDate, current.ShippedDate) == models.StatusFinished {
			r.logger.WithField("order_id", id).Debug("delete rejected")
			return fmt.Errorf("%w: order %d", database.ErrOrderFinished, id)
		}

		query, args, err := r.sb.Delete("orders").Where(sq.Eq{"order_id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete order: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}

		if err := expectSingleRow(result); err != nil {
			return err
		}

		deleted = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func (r *OrderRepository) getOrder(ctx context.Context, q database.Querier, id int64, forUpdate bool) (*models.Order, error) {
	builder := r.sb.Select(orderColumns...).From("orders").Where(sq.Eq{"order_id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get order: %w", err)
	}

	order, err := scanOrder(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return &order, nil
}

func expectSingleRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	switch {
	case rowsAffected == 0:
		return database.ErrOrderNotFound
	case rowsAffected != 1:
		return fmt.Errorf("%w: %d", database.ErrUnexpectedRowCount, rowsAffected)
	}

	return nil
}
