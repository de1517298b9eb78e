// Package row describes the Translator++ row a plugin operates on.
//
// The host hands every plugin one row with duck-typed fields. Row abstracts
// that object so classification and propagation can run against a plain Go
// Record in tests or against a Binding over the host's decoded JSON.
package row

// Row is the capability a plugin needs from one host row.
type Row interface {
	// GetContext returns the context paths. ok is false when the host row
	// has no context or it is not a sequence.
	GetContext() (paths []string, ok bool)
	GetTags() []string
	SetTags(tags []string)
	// GetCells returns the row cells. Index 0 holds the translation.
	GetCells() []string
	// GetParameters returns the per-path records. ok is false when the
	// host row has none yet.
	GetParameters() (params []Parameter, ok bool)
	SetParameters(params []Parameter)
	// Key identifies the row in the project table.
	Key() (file string, rowID int)
}

// Translation returns cells[0], or "" when the row has no cells.
func Translation(r Row) string {
	cells := r.GetCells()
	if len(cells) == 0 {
		return ""
	}
	return cells[0]
}

// HasTag reports whether tag is among the row tags.
func HasTag(r Row, tag string) bool {
	for _, t := range r.GetTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// Record is a Row backed by ordinary Go fields. A nil Context or nil
// Parameters means the field is absent.
type Record struct {
	Context    []string    `json:"context"`
	Tags       []string    `json:"tags"`
	Cells      []string    `json:"cells"`
	Parameters []Parameter `json:"parameters,omitempty"`
	File       string      `json:"file"`
	RowID      int         `json:"rowId"`
}

func (r *Record) GetContext() ([]string, bool) { return r.Context, r.Context != nil }

func (r *Record) GetTags() []string { return r.Tags }

func (r *Record) SetTags(tags []string) { r.Tags = tags }

func (r *Record) GetCells() []string { return r.Cells }

func (r *Record) GetParameters() ([]Parameter, bool) { return r.Parameters, r.Parameters != nil }

func (r *Record) SetParameters(params []Parameter) { r.Parameters = params }

func (r *Record) Key() (string, int) { return r.File, r.RowID }
