package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"rasoi-backend/internal/models"
)

type DishRepo struct {
	pool *pgxpool.Pool
}

func NewDishRepo(pool *pgxpool.Pool) *DishRepo {
	return &DishRepo{pool: pool}
}

const dishColumns = `id, user_id, title, description, original_image_url, healthier_image_url,
	recipe, status, created_at, updated_at`

func (r *DishRepo) Create(ctx context.Context, d *models.UserDish) error {
	d.ID = uuid.New()
	if d.Status == "" {
		d.Status = models.DishStatusPending
	}

	query := `INSERT INTO user_dishes (id, user_id, title, description, original_image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		d.ID, d.UserID, d.Title, d.Description, d.OriginalImageURL, d.Status,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *DishRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDish, error) {
	d := &models.UserDish{}
	err := r.pool.QueryRow(ctx, "SELECT "+dishColumns+" FROM user_dishes WHERE id = $1", id).Scan(
		&d.ID, &d.UserID, &d.Title, &d.Description, &d.OriginalImageURL, &d.HealthierImageURL,
		&d.Recipe, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DishRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserDish, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+dishColumns+" FROM user_dishes WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []*models.UserDish{}
	for rows.Next() {
		d := &models.UserDish{}
		err := rows.Scan(
			&d.ID, &d.UserID, &d.Title, &d.Description, &d.OriginalImageURL, &d.HealthierImageURL,
			&d.Recipe, &d.Status, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

// SaveResult records the outcome of a transform. healthierImageURL and recipe
// may be nil.
func (r *DishRepo) SaveResult(ctx context.Context, id uuid.UUID, status string, healthierImageURL, recipe *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE user_dishes SET status = $1, healthier_image_url = $2, recipe = $3, updated_at = NOW()
		 WHERE id = $4`,
		status, healthierImageURL, recipe, id,
	)
	return err
}
