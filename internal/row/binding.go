package row

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Binding is a Row over the host's dynamic row object, as decoded from JSON.
// It applies the host's loose typing rules: context only counts when it is
// an array, entries are coerced to strings, and unknown fields are kept.
type Binding struct {
	fields map[string]any
}

// Bind wraps a host row object. A nil map starts an empty row.
func Bind(fields map[string]any) *Binding {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Binding{fields: fields}
}

// DecodeBinding parses a host row from JSON. Numbers keep their literal form.
func DecodeBinding(data []byte) (*Binding, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return Bind(fields), nil
}

// Fields returns the underlying host object.
func (b *Binding) Fields() map[string]any {
	return b.fields
}

func (b *Binding) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.fields)
}

func (b *Binding) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeBinding(data)
	if err != nil {
		return err
	}
	b.fields = decoded.fields
	return nil
}

func (b *Binding) GetContext() ([]string, bool) {
	switch v := b.fields["context"].(type) {
	case []string:
		return v, true
	case []any:
		paths := make([]string, len(v))
		for i, e := range v {
			paths[i] = coerce(e)
		}
		return paths, true
	default:
		return nil, false
	}
}

func (b *Binding) GetTags() []string {
	switch v := b.fields["tags"].(type) {
	case []string:
		return v
	case []any:
		tags := make([]string, len(v))
		for i, e := range v {
			tags[i] = coerce(e)
		}
		return tags
	default:
		return nil
	}
}

func (b *Binding) SetTags(tags []string) {
	out := make([]any, len(tags))
	for i, t := range tags {
		out[i] = t
	}
	b.fields["tags"] = out
}

// GetCells returns the string cells. A cell that is not a string reads as "".
func (b *Binding) GetCells() []string {
	switch v := b.fields["cells"].(type) {
	case []string:
		return v
	case []any:
		cells := make([]string, len(v))
		for i, e := range v {
			if s, ok := e.(string); ok {
				cells[i] = s
			}
		}
		return cells
	default:
		return nil
	}
}

// GetParameters decodes the host records. An entry that is not an object is
// replaced by a fresh record for the context path at the same index.
func (b *Binding) GetParameters() ([]Parameter, bool) {
	switch v := b.fields["parameters"].(type) {
	case []Parameter:
		return v, true
	case []any:
		paths, _ := b.GetContext()
		params := make([]Parameter, len(v))
		for i, e := range v {
			p, err := decodeEntry(e)
			if err != nil {
				log.Debug().Err(err).Int("index", i).Msg("Replacing malformed parameter record")
				if i < len(paths) {
					p = NewParameter(paths[i])
				}
			}
			params[i] = p
		}
		return params, true
	default:
		return nil, false
	}
}

func decodeEntry(e any) (Parameter, error) {
	switch v := e.(type) {
	case Parameter:
		return v, nil
	case map[string]any:
		return DecodeParameter(v)
	default:
		return Parameter{}, fmt.Errorf("parameter record is %T, not an object", e)
	}
}

func (b *Binding) SetParameters(params []Parameter) {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p.Fields()
	}
	b.fields["parameters"] = out
}

// Key returns the file name and row id. A row id that is not an integer
// reads as -1.
func (b *Binding) Key() (string, int) {
	var file string
	if v, ok := b.fields["file"]; ok && v != nil {
		file = coerce(v)
	}
	return file, rowID(b.fields["rowId"])
}

func rowID(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == math.Trunc(n) {
			return int(n)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return -1
}

// coerce converts a host value to the string the host's regex test sees.
func coerce(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return formatNumber(f)
		}
		return x.String()
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if e != nil {
				parts[i] = coerce(e)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return fmt.Sprint(x)
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
