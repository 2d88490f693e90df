package storage

import (
	"context"
	"fmt"

	"github.com/md-rashed-zaman/costcalc/libs/db"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
	"github.com/shopspring/decimal"
)

type ItemRepository struct {
	pool *db.Pool
}

func NewItemRepository(pool *db.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, name, price::text, description`

func (r *ItemRepository) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (model.Item, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		return model.Item{}, notFoundIfNoRows(err)
	}
	return item, nil
}

func (r *ItemRepository) Create(ctx context.Context, item model.Item) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO items (name, price, description)
		VALUES ($1, $2::numeric, $3)
		RETURNING id
	`, item.Name, item.Price.String(), item.Description).Scan(&id)
	return id, err
}

func (r *ItemRepository) Update(ctx context.Context, item model.Item) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE items
		SET name = $2, price = $3::numeric, description = $4
		WHERE id = $1
	`, item.ID, item.Name, item.Price.String(), item.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItem(row rowScanner) (model.Item, error) {
	var item model.Item
	var price string
	if err := row.Scan(&item.ID, &item.Name, &price, &item.Description); err != nil {
		return model.Item{}, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return model.Item{}, fmt.Errorf("item %d price: %w", item.ID, err)
	}
	item.Price = p
	return item, nil
}
