package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
)

func parsePoint(xs, ys string) (core.Position, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return core.Position{}, fmt.Errorf("invalid x %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return core.Position{}, fmt.Errorf("invalid y %q", ys)
	}
	p := core.Position{X: x, Y: y}
	if !p.Finite() {
		return core.Position{}, fmt.Errorf("invalid point (%s, %s): %w", xs, ys, core.ErrInvalidPosition)
	}
	return p, nil
}

// nextSlot returns a position below the lowest block.
func (c *Console) nextSlot() core.Position {
	blocks := c.ws.Blocks()
	if len(blocks) == 0 {
		return core.Position{X: defaultX, Y: firstY}
	}
	lowest := blocks[0].Position.Y
	for _, b := range blocks[1:] {
		lowest = max(lowest, b.Position.Y)
	}
	return core.Position{X: defaultX, Y: lowest + rowSpacing}
}

func (c *Console) add(args []string) error {
	pos := c.nextSlot()
	if len(args) >= 3 {
		p, err := parsePoint(args[1], args[2])
		if err != nil {
			return err
		}
		pos = p
	} else if len(args) == 2 {
		return fmt.Errorf("usage: %s", commands["add"].usage)
	}

	id, err := c.ws.AddBlock(core.KindTag(strings.ToLower(args[0])), pos)
	if err != nil {
		return err
	}
	c.r.Success(fmt.Sprintf("added %s (%s)", id, args[0]))
	return nil
}

func (c *Console) move(args []string) error {
	id, err := core.ParseBlockID(args[0])
	if err != nil {
		return err
	}
	pos, err := parsePoint(args[1], args[2])
	if err != nil {
		return err
	}
	return c.ws.MoveBlock(id, pos)
}

func (c *Console) set(args []string) error {
	id, err := core.ParseBlockID(args[0])
	if err != nil {
		return err
	}
	value := ""
	if len(args) > 2 {
		value = strings.ReplaceAll(args[2], `\n`, "\n")
	}
	return c.ws.Configure(id, args[1], value)
}

func (c *Console) form(args []string) error {
	id, err := core.ParseBlockID(args[0])
	if err != nil {
		return err
	}
	form, err := c.ws.ConfigForm(id)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		rows = append(rows, []string{f.Name, f.Label, f.Kind.String(), f.Value, strings.Join(f.Options, "|")})
	}
	c.r.Header(2, fmt.Sprintf("%s %s", form.Kind.Label, id))
	c.r.Table([]string{"FIELD", "LABEL", "TYPE", "VALUE", "OPTIONS"}, rows)
	return nil
}

func (c *Console) connect(args []string) error {
	from, err := core.ParseBlockID(args[0])
	if err != nil {
		return err
	}
	to, err := core.ParseBlockID(args[1])
	if err != nil {
		return err
	}
	if err := c.ws.Connect(from, to); err != nil {
		return err
	}
	c.r.Success(fmt.Sprintf("connected %s -> %s", from, to))
	return nil
}

func (c *Console) delete(args []string) error {
	id, err := core.ParseBlockID(args[0])
	if err != nil {
		return err
	}
	c.ws.DeleteBlock(id)
	return nil
}

func (c *Console) clear(_ []string) error {
	c.ws.Clear()
	c.r.Success("workspace cleared")
	return nil
}

func formatConfig(v core.Values) string {
	if v == nil {
		return "-"
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, v[k])
	}
	return strings.Join(parts, " ")
}

func (c *Console) blocks(_ []string) error {
	blocks := c.ws.Blocks()
	if len(blocks) == 0 {
		c.r.Muted("no blocks")
		return nil
	}
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			b.ID.String(),
			string(b.Kind),
			strconv.FormatFloat(b.Position.X, 'f', -1, 64),
			strconv.FormatFloat(b.Position.Y, 'f', -1, 64),
			formatConfig(b.Config),
		})
	}
	c.r.Table([]string{"ID", "KIND", "X", "Y", "CONFIG"}, rows)
	return nil
}

func (c *Console) links(_ []string) error {
	conns := c.ws.Connections()
	if len(conns) == 0 {
		c.r.Muted("no connections")
		return nil
	}
	rows := make([][]string, 0, len(conns))
	for _, conn := range conns {
		rows = append(rows, []string{conn.Start.String(), conn.End.String()})
	}
	c.r.Table([]string{"FROM", "TO"}, rows)
	return nil
}

func (c *Console) code(args []string) error {
	name := c.dialect
	if len(args) > 0 {
		d, err := dialect.Resolve(args[0])
		if err != nil {
			return err
		}
		name = d.Name
	}
	out, err := c.ws.Generate(name)
	if err != nil {
		return err
	}
	if out == "" {
		c.r.Muted("workspace is empty")
		return nil
	}
	c.r.Code(name, out)
	return nil
}

func (c *Console) setDialect(args []string) error {
	if len(args) == 0 {
		d, _ := dialect.Get(c.dialect)
		c.r.KeyValue("Dialect", fmt.Sprintf("%s (%s)", d.Name, d.Label))
		return nil
	}
	d, err := dialect.Resolve(args[0])
	if err != nil {
		return err
	}
	c.dialect = d.Name
	c.r.Success("dialect set to " + d.Label)
	return nil
}

func (c *Console) dialects(_ []string) error {
	rows := make([][]string, 0)
	for _, d := range dialect.All() {
		mark := ""
		if d.Name == c.dialect {
			mark = "*"
		}
		rows = append(rows, []string{mark, d.Name, d.Label, strings.Join(d.Aliases, ", ")})
	}
	c.r.Table([]string{"", "NAME", "LABEL", "ALIASES"}, rows)
	return nil
}

func (c *Console) kinds(_ []string) error {
	kinds := c.ws.Catalog().Kinds()
	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		fields := make([]string, 0, len(k.Fields))
		for _, f := range k.Fields {
			fields = append(fields, f.Name)
		}
		rows = append(rows, []string{string(k.Tag), k.Label, strings.Join(fields, ", ")})
	}
	c.r.Table([]string{"KIND", "LABEL", "FIELDS"}, rows)
	return nil
}
