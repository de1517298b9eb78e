package classify

import (
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/rules"

	"github.com/rs/zerolog/log"
)

const (
	// TagYellow marks a row whose every context path is translatable.
	TagYellow = "yellow"
	// TagGreen marks a row where only some context paths are translatable.
	TagGreen = "green"
)

// Result is the outcome of evaluating a set of context paths. Tag is
// TagYellow, TagGreen or "" when no path matched.
type Result struct {
	Matched int
	Total   int
	Tag     string
}

// Classifier tags rows by how many of their context paths are translatable.
type Classifier struct {
	rules *rules.Table
}

// NewClassifier creates a classifier over table. A nil table uses rules.Default().
func NewClassifier(table *rules.Table) *Classifier {
	if table == nil {
		table = rules.Default()
	}
	return &Classifier{rules: table}
}

// Evaluate decides the tag for paths without touching any row.
func (c *Classifier) Evaluate(paths []string) Result {
	res := Result{
		Matched: c.rules.Count(paths),
		Total:   len(paths),
	}
	switch {
	case res.Total > 0 && res.Matched == res.Total:
		res.Tag = TagYellow
	case res.Matched > 0:
		res.Tag = TagGreen
	}
	return res
}

// Classify recomputes the yellow/green tag of r from its context paths.
// Rows without a context sequence are left alone.
func (c *Classifier) Classify(r row.Row) {
	paths, ok := r.GetContext()
	if !ok {
		file, id := r.Key()
		log.Debug().Str("file", file).Int("row", id).Msg("Row has no context, skipping classification")
		return
	}

	res := c.Evaluate(paths)

	current := r.GetTags()
	tags := make([]string, 0, len(current)+1)
	for _, t := range current {
		if t == TagYellow || t == TagGreen {
			continue
		}
		tags = append(tags, t)
	}
	if res.Tag != "" {
		tags = append(tags, res.Tag)
	}
	r.SetTags(tags)

	log.Debug().
		Int("matched", res.Matched).
		Int("total", res.Total).
		Str("tag", res.Tag).
		Msg("Row classified")
}
