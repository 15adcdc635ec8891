package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/dastanaron/tabmarks/internal/logging"
	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeThemeOnly(t *testing.T) {
	merged, err := Merge(models.DefaultSettings(), []byte(`{"theme":"dark"}`))
	require.NoError(t, err)
	assert.Equal(t, models.Theme("dark"), merged.Theme)
	assert.False(t, merged.Background.Enabled)
	assert.Equal(t, models.WidthAuto, merged.Width)
}

func TestMergeBackgroundFieldByField(t *testing.T) {
	defaults := models.DefaultSettings()
	defaults.Background.URL = "https://default.example/bg.jpg"

	merged, err := Merge(defaults, []byte(`{"background":{"enabled":true}}`))
	require.NoError(t, err)
	assert.True(t, merged.Background.Enabled)
	assert.Equal(t, "https://default.example/bg.jpg", merged.Background.URL)
}

func TestMergeWidth(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"width":"1200"}`, "1200"},
		{`{"width":1000}`, "1000"},
		{`{"width":null}`, models.WidthAuto},
		{`{"width":""}`, models.WidthAuto},
		{`{}`, models.WidthAuto},
	}
	for _, tt := range tests {
		merged, err := Merge(models.DefaultSettings(), []byte(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, merged.Width, tt.raw)
	}
}

func TestMergeInvalidJSON(t *testing.T) {
	merged, err := Merge(models.DefaultSettings(), []byte(`{`))
	var storageErr *models.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Equal(t, models.DefaultSettings(), merged)
}

func TestStoreLoadSave(t *testing.T) {
	kv := repository.NewMemoryStore()
	store := NewStore(kv, logging.Discard())
	ctx := context.Background()

	assert.Equal(t, models.DefaultSettings(), store.Load(ctx))

	s := models.AppSettings{
		Width:      "1200",
		Theme:      models.ThemeDeep,
		Background: models.BackgroundSettings{Enabled: true, URL: "https://img.example/a.jpg"},
	}
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, s, store.Load(ctx))

	// whole-object overwrite
	s2 := models.DefaultSettings()
	s2.Theme = models.ThemeFresh
	require.NoError(t, store.Save(ctx, s2))
	assert.Equal(t, s2, store.Load(ctx))
}

func TestStoreLoadCorruptFallsBack(t *testing.T) {
	kv := repository.NewMemoryStore()
	require.NoError(t, kv.Set(context.Background(), repository.KeyAppSettings, []byte("nope")))

	store := NewStore(kv, logging.Discard())
	assert.Equal(t, models.DefaultSettings(), store.Load(context.Background()))
}
