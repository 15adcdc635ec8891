package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/dastanaron/tabmarks/internal/models"

	"github.com/sirupsen/logrus"
)

// DefaultImageTimeout is how long a candidate image may take to load
const DefaultImageTimeout = 5 * time.Second

// PrimaryImages are tried first when picking a background
var PrimaryImages = []string{
	"https://images.pexels.com/photos/1287145/pexels-photo-1287145.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/1261728/pexels-photo-1261728.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/2559941/pexels-photo-2559941.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/1323550/pexels-photo-1323550.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/1366919/pexels-photo-1366919.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/2387793/pexels-photo-2387793.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/1906658/pexels-photo-1906658.jpeg?auto=compress&cs=tinysrgb&w=1920",
	"https://images.pexels.com/photos/2088170/pexels-photo-2088170.jpeg?auto=compress&cs=tinysrgb&w=1920",
}

// FallbackImages are tried when the primary pick fails
var FallbackImages = []string{
	"https://source.unsplash.com/random/1920x1080/?nature",
	"https://source.unsplash.com/random/1920x1080/?landscape",
	"https://source.unsplash.com/random/1920x1080/?mountains",
	"https://source.unsplash.com/random/1920x1080/?ocean",
	"https://source.unsplash.com/random/1920x1080/?forest",
}

var errNotImage = errors.New("response is not an image")

// ImageLoader preloads an image, returning once it is fully available
type ImageLoader interface {
	Load(ctx context.Context, url string) error
}

// HTTPImageLoader preloads images with a GET request
type HTTPImageLoader struct {
	Client *http.Client
}

// Load downloads url and checks that it is an image
func (l HTTPImageLoader) Load(ctx context.Context, url string) error {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return errNotImage
	}
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}

// Picker chooses and preloads a background image
type Picker struct {
	loader   ImageLoader
	primary  []string
	fallback []string
	timeout  time.Duration
	intn     func(n int) int
	log      logrus.FieldLogger
}

// PickerOption configures a Picker
type PickerOption func(*Picker)

// WithCandidates replaces the candidate lists
func WithCandidates(primary, fallback []string) PickerOption {
	return func(p *Picker) {
		p.primary = primary
		p.fallback = fallback
	}
}

// WithTimeout sets the per-image load timeout
func WithTimeout(d time.Duration) PickerOption {
	return func(p *Picker) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithIntn replaces the random index source
func WithIntn(intn func(n int) int) PickerOption {
	return func(p *Picker) {
		p.intn = intn
	}
}

// NewPicker creates a background picker
func NewPicker(loader ImageLoader, log logrus.FieldLogger, opts ...PickerOption) *Picker {
	p := &Picker{
		loader:   loader,
		primary:  PrimaryImages,
		fallback: FallbackImages,
		timeout:  DefaultImageTimeout,
		intn:     rand.IntN,
		log:      log.WithField("component", "background"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Refresh picks a random image from the primary list and preloads it; if
// that fails or times out, it does the same with the fallback list. On
// success the returned settings have the background enabled with the new
// url. When both attempts fail, current is returned unchanged together with
// an ImageLoadError.
func (p *Picker) Refresh(ctx context.Context, current models.AppSettings) (models.AppSettings, error) {
	var lastErr error
	for _, candidates := range [][]string{p.primary, p.fallback} {
		if len(candidates) == 0 {
			continue
		}
		url := candidates[p.intn(len(candidates))]

		if err := p.preload(ctx, url); err != nil {
			p.log.WithError(err).WithField("url", url).Warn("Background image failed, trying fallback")
			lastErr = err
			continue
		}

		next := current
		next.Background = models.BackgroundSettings{Enabled: true, URL: url}
		return next, nil
	}

	if lastErr == nil {
		lastErr = &models.ImageLoadError{Err: errors.New("no candidate images")}
	}
	p.log.WithError(lastErr).Error("All background image sources failed")
	return current, lastErr
}

func (p *Picker) preload(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.loader.Load(ctx, url)
	}()

	select {
	case err := <-done:
		if err != nil {
			return &models.ImageLoadError{URL: url, Err: err}
		}
		return nil
	case <-ctx.Done():
		return &models.ImageLoadError{URL: url, Err: ctx.Err()}
	}
}
