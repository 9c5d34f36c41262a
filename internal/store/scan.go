package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/safar/northwind-store/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

var orderColumns = []string{
	"order_id",
	"customer_id",
	"employee_id",
	"order_date",
	"required_date",
	"shipped_date",
	"ship_via",
	"freight",
	"ship_name",
	"ship_address",
	"ship_city",
	"ship_region",
	"ship_postal_code",
	"ship_country",
}

var productColumns = []string{
	"product_id",
	"product_name",
	"quantity_per_unit",
	"unit_price",
	"units_in_stock",
	"units_on_order",
	"reorder_level",
	"discontinued",
}

// scanOrder maps one orders row. Nullable dates and numbers stay optional;
// nullable shipping strings collapse to "".
func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o                                       models.Order
		orderDate, requiredDate, shippedDate    sql.Null[time.Time]
		shipVia                                 sql.Null[int64]
		freight                                 decimal.NullDecimal
		shipName, shipAddress, shipCity         sql.NullString
		shipRegion, shipPostalCode, shipCountry sql.NullString
	)

	err := row.Scan(
		&o.OrderID,
		&o.CustomerID,
		&o.EmployeeID,
		&orderDate,
		&requiredDate,
		&shippedDate,
		&shipVia,
		&freight,
		&shipName,
		&shipAddress,
		&shipCity,
		&shipRegion,
		&shipPostalCode,
		&shipCountry,
	)
	if err != nil {
		return models.Order{}, err
	}

	o.OrderDate = optional(orderDate)
	o.RequiredDate = optional(requiredDate)
	o.ShippedDate = optional(shippedDate)
	o.ShipVia = optional(shipVia)
	o.Freight = optionalDecimal(freight)
	o.ShipName = shipName.String
	o.ShipAddress = shipAddress.String
	o.ShipCity = shipCity.String
	o.ShipRegion = shipRegion.String
	o.ShipPostalCode = shipPostalCode.String
	o.ShipCountry = shipCountry.String
	o.Status = models.DeriveStatus(o.OrderDate, o.ShippedDate)

	return o, nil
}

// productDest holds scan targets for the product columns so they can be
// appended after other columns in a joined row.
type productDest struct {
	p               models.Product
	quantityPerUnit sql.NullString
	unitPrice       decimal.NullDecimal
	unitsInStock    sql.Null[int16]
	unitsOnOrder    sql.Null[int16]
	reorderLevel    sql.Null[int16]
}

func (d *productDest) targets() []any {
	return []any{
		&d.p.ProductID,
		&d.p.ProductName,
		&d.quantityPerUnit,
		&d.unitPrice,
		&d.unitsInStock,
		&d.unitsOnOrder,
		&d.reorderLevel,
		&d.p.Discontinued,
	}
}

func (d *productDest) product() models.Product {
	p := d.p
	p.QuantityPerUnit = d.quantityPerUnit.String
	p.UnitPrice = optionalDecimal(d.unitPrice)
	p.UnitsInStock = optional(d.unitsInStock)
	p.UnitsOnOrder = optional(d.unitsOnOrder)
	p.ReorderLevel = optional(d.reorderLevel)
	return p
}

func scanProduct(row rowScanner) (models.Product, error) {
	var d productDest
	if err := row.Scan(d.targets()...); err != nil {
		return models.Product{}, err
	}
	return d.product(), nil
}

// scanOrderLine maps a row of order_details joined with products.
func scanOrderLine(row rowScanner) (models.OrderDetail, models.Product, error) {
	var (
		line models.OrderDetail
		d    productDest
	)

	dest := append([]any{&line.OrderID, &line.UnitPrice, &line.Quantity, &line.Discount}, d.targets()...)
	if err := row.Scan(dest...); err != nil {
		return models.OrderDetail{}, models.Product{}, err
	}

	p := d.product()
	line.ProductID = p.ProductID

	return line, p, nil
}

func optional[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

func optionalDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}
