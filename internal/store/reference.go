package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/safar/northwind-store/internal/models"
)

func (r *CatalogRepository) ListShippers(ctx context.Context) ([]models.Shipper, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT shipper_id, company_name, phone
		FROM shippers
		ORDER BY shipper_id`)
	if err != nil {
		return nil, fmt.Errorf("list shippers: %w", err)
	}
	defer rows.Close()

	shippers := make([]models.Shipper, 0)
	for rows.Next() {
		var (
			shipper models.Shipper
			phone   sql.NullString
		)
		if err := rows.Scan(&shipper.ShipperID, &shipper.CompanyName, &phone); err != nil {
			return nil, fmt.Errorf("scan shipper: %w", err)
		}
		shipper.Phone = phone.String
		shippers = append(shippers, shipper)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return shippers, nil
}

func (r *CatalogRepository) ListTerritories(ctx context.Context) ([]models.Territory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.territory_id, t.territory_description, r.region_id, r.region_description
		FROM territories t
		JOIN region r ON r.region_id = t.region_id
		ORDER BY t.territory_id`)
	if err != nil {
		return nil, fmt.Errorf("list territories: %w", err)
	}
	defer rows.Close()

	territories := make([]models.Territory, 0)
	for rows.Next() {
		var t models.Territory
		err := rows.Scan(
			&t.TerritoryID,
			&t.TerritoryDescription,
			&t.Region.RegionID,
			&t.Region.RegionDescription,
		)
		if err != nil {
			return nil, fmt.Errorf("scan territory: %w", err)
		}
		t.RegionID = t.Region.RegionID
		territories = append(territories, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return territories, nil
}
