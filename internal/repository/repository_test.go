package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"rasoi-backend/internal/database"
	"rasoi-backend/internal/models"
	"rasoi-backend/migrations"
)

func TestRepositories_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "rasoi",
				"POSTGRES_PASSWORD": "rasoi",
				"POSTGRES_DB":       "rasoi",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	pool, err := database.NewPostgresPool(fmt.Sprintf("postgres://rasoi:rasoi@%s/rasoi?sslmode=disable", endpoint))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, database.RunMigrations(ctx, pool, migrations.FS, zaptest.NewLogger(t)))
	// A second run must be a no-op.
	require.NoError(t, database.RunMigrations(ctx, pool, migrations.FS, zaptest.NewLogger(t)))

	t.Run("seeded recipes cover every region", func(t *testing.T) {
		repo := NewRecipeRepo(pool)

		for _, region := range models.Regions {
			recipes, err := repo.List(ctx, region)
			require.NoError(t, err)
			assert.NotEmpty(t, recipes, "region %s", region)
			for _, rec := range recipes {
				assert.True(t, rec.IsLowOil, rec.Title)
				if region != "all" {
					assert.Equal(t, region, rec.Region)
				}
			}
		}
	})

	t.Run("recipes filter by region newest first", func(t *testing.T) {
		repo := NewRecipeRepo(pool)

		before, err := repo.List(ctx, "all")
		require.NoError(t, err)
		gujaratBefore, err := repo.List(ctx, "Gujarat")
		require.NoError(t, err)

		for _, rec := range []*models.Recipe{
			{Title: "Idli Upma", Region: "South India", Difficulty: "easy", IsLowOil: true},
			{Title: "Handvo", Region: "Gujarat", Difficulty: "medium", IsLowOil: true},
			{Title: "Chana Chaat", Region: "North India", Difficulty: "easy", Ingredients: json.RawMessage(`["chana","onion"]`)},
		} {
			ingredients := "[]"
			if rec.Ingredients != nil {
				ingredients = string(rec.Ingredients)
			}
			_, err := pool.Exec(ctx,
				`INSERT INTO recipes (title, region, difficulty, is_low_oil, ingredients) VALUES ($1, $2, $3, $4, $5)`,
				rec.Title, rec.Region, rec.Difficulty, rec.IsLowOil, ingredients)
			require.NoError(t, err)
			time.Sleep(5 * time.Millisecond)
		}

		all, err := repo.List(ctx, "all")
		require.NoError(t, err)
		require.Len(t, all, len(before)+3)
		assert.Equal(t, "Chana Chaat", all[0].Title)
		assert.Equal(t, "Idli Upma", all[2].Title)
		assert.JSONEq(t, `["chana","onion"]`, string(all[0].Ingredients))

		gujarati, err := repo.List(ctx, "Gujarat")
		require.NoError(t, err)
		require.Len(t, gujarati, len(gujaratBefore)+1)
		assert.Equal(t, "Handvo", gujarati[0].Title)

		none, err := repo.List(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("dish lifecycle", func(t *testing.T) {
		repo := NewDishRepo(pool)
		userID := uuid.New()

		d := &models.UserDish{
			UserID:           userID,
			Title:            "Pakoras",
			Description:      "Deep fried onion pakoras",
			OriginalImageURL: "https://storage.example/pakoras.jpg",
		}
		require.NoError(t, repo.Create(ctx, d))
		assert.Equal(t, models.DishStatusPending, d.Status)

		img, recipe := "https://img.example/air-fried.png", "Air fry at 180C"
		require.NoError(t, repo.SaveResult(ctx, d.ID, models.DishStatusCompleted, &img, &recipe))

		got, err := repo.GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DishStatusCompleted, got.Status)
		require.NotNil(t, got.HealthierImageURL)
		assert.Equal(t, img, *got.HealthierImageURL)
		require.NotNil(t, got.Recipe)
		assert.Equal(t, recipe, *got.Recipe)

		list, err := repo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		others, err := repo.ListByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, others)

		_, err = repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}
