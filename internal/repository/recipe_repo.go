package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"rasoi-backend/internal/models"
)

type RecipeRepo struct {
	pool *pgxpool.Pool
}

func NewRecipeRepo(pool *pgxpool.Pool) *RecipeRepo {
	return &RecipeRepo{pool: pool}
}

const recipeColumns = `id, title, description, ingredients, instructions, region, category,
	cooking_time, difficulty, is_low_oil, created_at`

// List returns recipes newest first. An empty region or "all" disables the
// region filter.
func (r *RecipeRepo) List(ctx context.Context, region string) ([]*models.Recipe, error) {
	query := "SELECT " + recipeColumns + " FROM recipes"
	var args []interface{}
	if region != "" && region != "all" {
		query += " WHERE region = $1"
		args = append(args, region)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		rec := &models.Recipe{}
		err := rows.Scan(
			&rec.ID, &rec.Title, &rec.Description, &rec.Ingredients, &rec.Instructions,
			&rec.Region, &rec.Category, &rec.CookingTime, &rec.Difficulty, &rec.IsLowOil, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}
