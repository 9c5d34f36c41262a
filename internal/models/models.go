package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	OrderID        int64            `json:"order_id"`
	CustomerID     string           `json:"customer_id"`
	EmployeeID     int64            `json:"employee_id"`
	OrderDate      *time.Time       `json:"order_date"`
	RequiredDate   *time.Time       `json:"required_date"`
	ShippedDate    *time.Time       `json:"shipped_date"`
	ShipVia        *int64           `json:"ship_via"`
	Freight        *decimal.Decimal `json:"freight"`
	ShipName       string           `json:"ship_name"`
	ShipAddress    string           `json:"ship_address"`
	ShipCity       string           `json:"ship_city"`
	ShipRegion     string           `json:"ship_region"`
	ShipPostalCode string           `json:"ship_postal_code"`
	ShipCountry    string           `json:"ship_country"`
	Status         Status           `json:"status"`
	Details        []OrderDetail    `json:"details,omitempty"`
	Products       []Product        `json:"products,omitempty"`
}

type OrderDetail struct {
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int16           `json:"quantity"`
	Discount  float32         `json:"discount"`
}

type Product struct {
	ProductID       int64            `json:"product_id"`
	ProductName     string           `json:"product_name"`
	QuantityPerUnit string           `json:"quantity_per_unit"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	UnitsInStock    *int16           `json:"units_in_stock"`
	UnitsOnOrder    *int16           `json:"units_on_order"`
	ReorderLevel    *int16           `json:"reorder_level"`
	Discontinued    bool             `json:"discontinued"`
}

type CustOrderHist struct {
	ProductName string `json:"product_name"`
	Total       int32  `json:"total"`
}

type CustOrdersDetail struct {
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int16           `json:"quantity"`
	Discount      int32           `json:"discount"`
	ExtendedPrice decimal.Decimal `json:"extended_price"`
}

type Shipper struct {
	ShipperID   int64  `json:"shipper_id"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

type Region struct {
	RegionID          int64  `json:"region_id"`
	RegionDescription string `json:"region_description"`
}

type Territory struct {
	TerritoryID          string `json:"territory_id"`
	TerritoryDescription string `json:"territory_description"`
	RegionID             int64  `json:"region_id"`
	Region               Region `json:"region"`
}
