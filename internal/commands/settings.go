package commands

import (
	"context"
	"io"

	"github.com/dastanaron/tabmarks/internal/settings"

	"gopkg.in/yaml.v3"
)

// SettingsCommand prints the effective page settings
type SettingsCommand struct {
	store *settings.Store
	out   io.Writer
}

// NewSettingsCommand creates a new settings command
func NewSettingsCommand(store *settings.Store, out io.Writer) *SettingsCommand {
	return &SettingsCommand{store: store, out: out}
}

// Execute writes the merged settings as YAML
func (c *SettingsCommand) Execute(ctx context.Context) error {
	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(c.store.Load(ctx)); err != nil {
		return err
	}
	return enc.Close()
}
