// Package print contributes console commands that print the loaded
// configuration. It does not build anything.
package print

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/specialistvlad/bootkernel/internal/config"
	"github.com/specialistvlad/bootkernel/internal/module"
)

// Module implements module.CommandRegistrar for this package.
type Module struct{}

// ModuleName implements module.Namer.
func (m *Module) ModuleName() string { return "print" }

// RegisterCommands adds the "config" command to the console.
func (m *Module) RegisterCommands(ctx context.Context, host module.Host) error {
	var key string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the loaded configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Print(cmd.OutOrStdout(), host.Configuration(), key)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "print only this key")
	host.Console().AddCommand(cmd)
	return nil
}

// Print writes each attribute of cfg as "key = <json>" in sorted key order.
// When key is set only that attribute is written.
func Print(w io.Writer, cfg *config.Model, key string) error {
	if cfg == nil {
		_, err := fmt.Fprintln(w, "(no configuration)")
		return err
	}

	keys := cfg.Keys()
	if key != "" {
		if _, ok := cfg.Value(key); !ok {
			return fmt.Errorf("configuration key %q is not set", key)
		}
		keys = []string{key}
	}

	for _, k := range keys {
		val := cfg.Attributes[k]
		data, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return fmt.Errorf("render %q: %w", k, err)
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", k, data); err != nil {
			return err
		}
	}
	return nil
}
