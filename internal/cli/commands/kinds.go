package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapblocks/internal/cli/output"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/spf13/cobra"
)

// KindInfo is the JSON/YAML form of a block kind.
type KindInfo struct {
	Tag          string            `json:"tag" yaml:"tag"`
	Label        string            `json:"label" yaml:"label"`
	Color        string            `json:"color" yaml:"color"`
	Configurable bool              `json:"configurable" yaml:"configurable"`
	Fields       []core.Field      `json:"fields,omitempty" yaml:"fields,omitempty"`
	Dialects     []string          `json:"dialects" yaml:"dialects"`
	Preview      map[string]string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

func newKindInfo(k *catalog.Kind, preview bool) KindInfo {
	info := KindInfo{
		Tag:          string(k.Tag),
		Label:        k.Label,
		Color:        k.Color,
		Configurable: k.Configurable(),
		Fields:       k.Fields,
		Dialects:     k.Dialects(),
	}
	if preview {
		info.Preview = make(map[string]string)
		for _, name := range dialect.List() {
			info.Preview[name] = k.Render(name, k.Defaults())
		}
	}
	return info
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds [kind]",
		Short: "List block kinds or describe one",
		Long: `List the block kinds offered by the toolbar.

With a kind argument, show its configuration fields and the code it
generates with default values in every dialect.`,
		Example: `  # List kinds
  leapblocks kinds

  # Describe the loop kind as JSON
  leapblocks kinds loop -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var tags []string
			for _, tag := range catalog.Default().Tags() {
				tags = append(tags, string(tag))
			}
			return tags, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			r := NewCommandContext(cmd).Renderer
			if len(args) == 1 {
				return describeKind(r, catalog.Default(), args[0])
			}
			return listKinds(r, catalog.Default())
		},
	}
	return cmd
}

func listKinds(r *output.Renderer, cat *catalog.Catalog) error {
	kinds := cat.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, k := range kinds {
		infos = append(infos, newKindInfo(k, false))
	}
	if ok, err := r.Data(infos); ok {
		return err
	}

	r.Header(1, fmt.Sprintf("Block kinds (%d)", len(kinds)))
	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		label := k.Label
		if r.EffectiveMode() == output.ModeText {
			label = r.Styles().Swatch(k.Color) + " " + label
		}
		fields := make([]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, f.Name)
		}
		rows = append(rows, []string{string(k.Tag), label, strings.Join(fields, ", ")})
	}
	r.Table([]string{"KIND", "LABEL", "FIELDS"}, rows)
	return nil
}

func describeKind(r *output.Renderer, cat *catalog.Catalog, tag string) error {
	k, err := cat.Lookup(core.KindTag(strings.ToLower(tag)))
	if err != nil {
		return err
	}
	info := newKindInfo(k, true)
	if ok, err := r.Data(info); ok {
		return err
	}

	r.Header(1, k.Label)
	r.KeyValue("Kind", info.Tag)
	r.KeyValue("Color", k.Color)
	r.KeyValue("Explicit rules", strings.Join(info.Dialects, ", "))
	r.Println()

	if k.Configurable() {
		r.Header(2, "Fields")
		rows := make([][]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			rows = append(rows, []string{f.Name, f.Label, f.Kind.String(), f.Default, strings.Join(f.Options, "|")})
		}
		r.Table([]string{"FIELD", "LABEL", "TYPE", "DEFAULT", "OPTIONS"}, rows)
		r.Println()
	}

	r.Header(2, "Generated with defaults")
	for _, name := range dialect.List() {
		heading := name
		if !k.HasRule(name) {
			heading += " (falls back to " + catalog.FallbackDialect + ")"
		}
		r.Header(3, heading)
		r.Code(name, info.Preview[name])
		r.Println()
	}
	return nil
}
