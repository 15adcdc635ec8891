package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dastanaron/tabmarks/internal/models"
	"github.com/dastanaron/tabmarks/internal/repository"

	"github.com/sirupsen/logrus"
)

// Store persists AppSettings in the sync area
type Store struct {
	kv  repository.KVStore
	log logrus.FieldLogger
}

// NewStore creates a settings store
func NewStore(kv repository.KVStore, log logrus.FieldLogger) *Store {
	return &Store{kv: kv, log: log.WithField("component", "settings")}
}

// Load returns the persisted settings merged over the defaults. Storage and
// decode failures are logged and yield the defaults.
func (s *Store) Load(ctx context.Context) models.AppSettings {
	defaults := models.DefaultSettings()

	data, ok, err := s.kv.Get(ctx, repository.KeyAppSettings)
	if err != nil {
		s.log.WithError(err).Error("Loading settings failed, using defaults")
		return defaults
	}
	if !ok {
		s.log.Debug("No saved settings found, using defaults")
		return defaults
	}

	merged, err := Merge(defaults, data)
	if err != nil {
		s.log.WithError(err).Error("Decoding settings failed, using defaults")
		return defaults
	}
	return merged
}

// Save overwrites the persisted settings with s. There is no merge and no
// concurrency check: the last write wins.
func (s *Store) Save(ctx context.Context, settings models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, repository.KeyAppSettings, data); err != nil {
		return err
	}
	s.log.WithField("settings", settings).Debug("Settings saved")
	return nil
}

type persistedBackground struct {
	Enabled *bool   `json:"enabled"`
	URL     *string `json:"url"`
}

type persistedSettings struct {
	Width      json.RawMessage      `json:"width"`
	Theme      *models.Theme        `json:"theme"`
	Background *persistedBackground `json:"background"`
}

// Merge overlays the persisted JSON document raw onto defaults field by
// field. The background object is merged per field as well, so a stored
// background without a url keeps the default url.
func Merge(defaults models.AppSettings, raw []byte) (models.AppSettings, error) {
	var p persistedSettings
	if err := json.Unmarshal(raw, &p); err != nil {
		return defaults, &models.StorageError{Op: "decode", Key: repository.KeyAppSettings, Err: err}
	}

	merged := defaults
	if width, ok := decodeWidth(p.Width); ok {
		merged.Width = width
	}
	if p.Theme != nil && *p.Theme != "" {
		merged.Theme = *p.Theme
	}
	if p.Background != nil {
		if p.Background.Enabled != nil {
			merged.Background.Enabled = *p.Background.Enabled
		}
		if p.Background.URL != nil {
			merged.Background.URL = *p.Background.URL
		}
	}
	return merged, nil
}

// decodeWidth accepts "auto", "1200" or 1200
func decodeWidth(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.Itoa(int(n)), true
	}
	return "", false
}
