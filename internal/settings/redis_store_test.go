package settings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer container.Terminate(ctx)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	defer client.Close()

	store := NewRedisStore(client)
	userID := uuid.New()

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)

	loaded.ToggleDyslexiaFont()
	loaded.ToggleTheme()
	require.NoError(t, store.Save(ctx, userID, loaded))

	raw, err := client.Get(ctx, "accessibility-settings:"+userID.String()).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"isDyslexiaFont":true,"isHighContrast":false,"language":"en","theme":"dark"}`, raw)

	again, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, loaded, again)
}
