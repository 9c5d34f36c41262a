package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/safar/northwind-store/internal/database"
	"github.com/safar/northwind-store/internal/models"
)

// CatalogRepository serves read-only reference data: products, shippers and
// territories.
type CatalogRepository struct {
	db database.Querier
	sb sq.StatementBuilderType
}

func NewCatalogRepository(db database.Querier) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"product_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	query, args, err := r.sb.
		Select(productColumns...).
		From("products").
		OrderBy("product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}
