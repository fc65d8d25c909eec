package workspace

import (
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// FormField is one editable control of a configuration form.
type FormField struct {
	core.Field
	Value string
}

// Form is the configuration form of one block.
type Form struct {
	Block  core.BlockID
	Kind   *catalog.Kind
	Fields []FormField
}

// Values returns the form's current values keyed by field name.
func (f *Form) Values() core.Values {
	v := make(core.Values, len(f.Fields))
	for _, field := range f.Fields {
		v[field.Name] = field.Value
	}
	return v
}

// ConfigForm returns the schema and current values of id. Empty stored
// values are presented as the field default.
func (w *Workspace) ConfigForm(id core.BlockID) (*Form, error) {
	b, ok := w.store.Get(id)
	if !ok {
		return nil, core.ErrBlockNotFound
	}
	kind, err := w.cat.Lookup(b.Kind)
	if err != nil {
		return nil, err
	}
	if !kind.Configurable() {
		return nil, &core.UnconfigurableBlockError{ID: id, Kind: b.Kind}
	}
	form := &Form{Block: id, Kind: kind, Fields: make([]FormField, 0, len(kind.Fields))}
	for _, f := range kind.Fields {
		form.Fields = append(form.Fields, FormField{Field: f, Value: b.Config.Get(f.Name, f.Default)})
	}
	return form, nil
}
