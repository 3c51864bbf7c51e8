package grocery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrItemNotFound = errors.New("item not found")

type Repository interface {
	StoreItem(ctx context.Context, item GroceryItem) (int, error)
	GetItem(ctx context.Context, id int) (GroceryItem, error)
	ListItems(ctx context.Context) ([]GroceryItem, error)
	// FindByCategory returns items whose category contains text, case-insensitively, in id order.
	FindByCategory(ctx context.Context, text string) ([]GroceryItem, error)
	UpdateItem(ctx context.Context, item GroceryItem) (bool, error)
	DeleteItem(ctx context.Context, id int) (bool, error)
	DetachUser(ctx context.Context, userId int) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectItem = `SELECT id, name, category, price, store, protein_per_100g, last_updated, user_id FROM grocery_items`

func (r *RepositoryImpl) StoreItem(ctx context.Context, item GroceryItem) (int, error) {
	query := `INSERT INTO grocery_items (
                    name,
                    category,
                    price,
                    store,
                    protein_per_100g,
                    last_updated,
                    user_id
				) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int
	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		item.Store,
		item.ProteinPer100g,
		item.LastUpdated,
		item.UserId,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store grocery item: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetItem(ctx context.Context, id int) (GroceryItem, error) {
	row := r.db.QueryRow(ctx, selectItem+` WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return GroceryItem{}, ErrItemNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get grocery item %d: %w", id, err)
		log.Error(err)
		return GroceryItem{}, err
	}
	return item, nil
}

func (r *RepositoryImpl) ListItems(ctx context.Context) ([]GroceryItem, error) {
	return r.queryItems(ctx, selectItem+` ORDER BY id`)
}

func (r *RepositoryImpl) FindByCategory(ctx context.Context, text string) ([]GroceryItem, error) {
	query := selectItem + ` WHERE category ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`
	return r.queryItems(ctx, query, escapeLike(text))
}

func (r *RepositoryImpl) UpdateItem(ctx context.Context, item GroceryItem) (bool, error) {
	query := `UPDATE grocery_items SET
                    name = $1,
                    category = $2,
                    price = $3,
                    store = $4,
                    protein_per_100g = $5,
                    last_updated = $6,
                    user_id = $7
				WHERE id = $8`
	result, err := r.db.Exec(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		item.Store,
		item.ProteinPer100g,
		item.LastUpdated,
		item.UserId,
		item.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update grocery item %d: %w", item.Id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DeleteItem(ctx context.Context, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM grocery_items WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete grocery item %d: %w", id, err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DetachUser(ctx context.Context, userId int) (int, error) {
	result, err := r.db.Exec(ctx, `UPDATE grocery_items SET user_id = NULL WHERE user_id = $1`, userId)
	if err != nil {
		err := fmt.Errorf("could not detach user %d from grocery items: %w", userId, err)
		log.Error(err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}

func (r *RepositoryImpl) queryItems(ctx context.Context, query string, args ...any) ([]GroceryItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query grocery items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	items := make([]GroceryItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}

func scanItem(row pgx.Row) (GroceryItem, error) {
	var item GroceryItem
	err := row.Scan(
		&item.Id,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.Store,
		&item.ProteinPer100g,
		&item.LastUpdated,
		&item.UserId,
	)
	return item, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes wildcard characters in text match literally inside a LIKE pattern.
func escapeLike(text string) string {
	return likeEscaper.Replace(text)
}
