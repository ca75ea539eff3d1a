package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.False(t, s.DyslexiaFont)
	assert.False(t, s.HighContrast)
	assert.Equal(t, "en", s.Language)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.NoError(t, s.Validate())
}

func TestToggle(t *testing.T) {
	s := Default()

	require.NoError(t, s.Toggle(FeatureDyslexiaFont))
	require.NoError(t, s.Toggle(FeatureHighContrast))
	require.NoError(t, s.Toggle(FeatureTheme))
	assert.True(t, s.DyslexiaFont)
	assert.True(t, s.HighContrast)
	assert.Equal(t, ThemeDark, s.Theme)

	require.NoError(t, s.Toggle(FeatureTheme))
	assert.Equal(t, ThemeLight, s.Theme)

	assert.Error(t, s.Toggle("bigger-buttons"))
}

func TestValidate_Languages(t *testing.T) {
	s := Default()
	for _, lang := range Languages {
		s.Language = lang
		assert.NoError(t, s.Validate(), lang)
	}

	s.Language = "fr"
	assert.Error(t, s.Validate())
}

func TestValidate_RejectsUnknownTheme(t *testing.T) {
	s := Default()
	s.Theme = "sepia"
	assert.Error(t, s.Validate())
}

func TestMemoryStore_LoadDefaultsThenRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	loaded, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)

	loaded.ToggleHighContrast()
	loaded.Language = "hi"
	require.NoError(t, store.Save(ctx, userID, loaded))

	again, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, Settings{HighContrast: true, Language: "hi", Theme: ThemeLight}, again)

	other, err := store.Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, Default(), other, "settings are per user")
}

func TestDecode_FillsMissingFields(t *testing.T) {
	s, err := decode([]byte(`{"isDyslexiaFont":true}`))
	require.NoError(t, err)
	assert.Equal(t, Settings{DyslexiaFont: true, Language: "en", Theme: ThemeLight}, s)

	s, err = decode([]byte(`{"language":""}`))
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)

	_, err = decode([]byte(`not json`))
	assert.Error(t, err)
}
