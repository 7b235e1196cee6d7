package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventadmissions/internal/domain"
)

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{
		DB: db,
	}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, code, name, kind, status, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	p := &domain.Product{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Code, &p.Name, &p.Kind, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetProductType(ctx context.Context, id string) (*domain.ProductType, error) {
	query := `
		SELECT id, product_id, size, choice, pref, subtype, price, status, created_at, updated_at
		FROM product_types
		WHERE id = $1
	`
	pt := &domain.ProductType{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&pt.ID, &pt.ProductID, &pt.Size, &pt.Choice, &pt.Pref, &pt.Subtype, &pt.Price, &pt.Status, &pt.CreatedAt, &pt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return pt, nil
}

func (r *productRepository) ListTypesByProductID(ctx context.Context, productID string) ([]*domain.ProductType, error) {
	query := `
		SELECT id, product_id, size, choice, pref, subtype, price, status, created_at, updated_at
		FROM product_types
		WHERE product_id = $1
		ORDER BY size ASC, subtype ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]*domain.ProductType, 0)
	for rows.Next() {
		pt := &domain.ProductType{}
		if err := rows.Scan(&pt.ID, &pt.ProductID, &pt.Size, &pt.Choice, &pt.Pref, &pt.Subtype, &pt.Price, &pt.Status, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, pt)
	}
	return types, rows.Err()
}
