package configure

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

// FormSignals is the part of the page signals posted on save.
type FormSignals struct {
	Config map[string]any `json:"config"`
}

// Values decodes the config signal into field values. Numbers and booleans
// are accepted and stored in their textual form. Names outside the form are
// dropped; fields missing from the signal keep their form value.
func (s FormSignals) Values(form *workspace.Form) (core.Values, error) {
	var raw map[string]string
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(s.Config); err != nil {
		return nil, err
	}

	values := form.Values()
	for name := range values {
		if v, ok := raw[name]; ok {
			values[name] = v
		}
	}
	return values, nil
}
