package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/spf13/cobra"
)

// DialectInfo is the JSON/YAML form of a dialect.
type DialectInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Extension   string   `json:"extension" yaml:"extension"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	FallsBackTo string   `json:"falls_back_to,omitempty" yaml:"falls_back_to,omitempty"`
	Default     bool     `json:"default" yaml:"default"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List output dialects",
		Long: `List the dialects code can be generated in.

Kinds without an explicit rule for a dialect use the rule of the dialect
it falls back to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx := NewCommandContext(cmd)
			r := cctx.Renderer

			selected, err := dialect.Resolve(cctx.Cfg.Dialect)
			if err != nil {
				return err
			}

			all := dialect.All()
			infos := make([]DialectInfo, 0, len(all))
			for _, d := range all {
				infos = append(infos, DialectInfo{
					Name:        d.Name,
					Label:       d.Label,
					Extension:   d.Extension,
					Aliases:     d.Aliases,
					FallsBackTo: d.FallsBackTo,
					Default:     d.Name == selected.Name,
				})
			}
			if ok, err := r.Data(infos); ok {
				return err
			}

			r.Header(1, fmt.Sprintf("Dialects (%d)", len(infos)))
			rows := make([][]string, 0, len(infos))
			for _, d := range infos {
				name := d.Name
				if d.Default {
					name += " *"
				}
				rows = append(rows, []string{name, d.Label, d.Extension, strings.Join(d.Aliases, ", "), d.FallsBackTo})
			}
			r.Table([]string{"NAME", "LABEL", "EXT", "ALIASES", "FALLBACK"}, rows)
			return nil
		},
	}
}
