package row

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"
)

// Parameter is the per-context-path record Translator++ keeps on a row.
// Extra holds any other host fields so they survive a round trip.
type Parameter struct {
	ContextStr  string         `mapstructure:"contextStr"`
	Translation string         `mapstructure:"translation"`
	Extra       map[string]any `mapstructure:",remain"`
}

// NewParameter returns a fresh record for one context path.
func NewParameter(contextStr string) Parameter {
	return Parameter{ContextStr: contextStr}
}

// Fields flattens the parameter into the host's object shape.
func (p Parameter) Fields() map[string]any {
	out := make(map[string]any, len(p.Extra)+2)
	maps.Copy(out, p.Extra)
	out["contextStr"] = p.ContextStr
	out["translation"] = p.Translation
	return out
}

// DecodeParameter converts a host object into a Parameter.
func DecodeParameter(v any) (Parameter, error) {
	var p Parameter
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Parameter{}, fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return Parameter{}, fmt.Errorf("decode parameter: %w", err)
	}
	return p, nil
}

func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

// UnmarshalJSON keeps numeric host fields as json.Number so large ids
// survive storage unchanged.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	decoded, err := DecodeParameter(m)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Clone returns a deep enough copy for storage: Extra is copied one level.
func Clone(params []Parameter) []Parameter {
	if params == nil {
		return nil
	}
	out := make([]Parameter, len(params))
	for i, p := range params {
		out[i] = p
		if p.Extra != nil {
			out[i].Extra = maps.Clone(p.Extra)
		}
	}
	return out
}
