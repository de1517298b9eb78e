package propagate

import (
	"context"
	"fmt"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/classify"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/rules"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Writer stores a row's parameters in the project table. Any project.Store
// satisfies it.
type Writer interface {
	WriteParameters(ctx context.Context, file string, rowID int, params []row.Parameter) error
}

// Propagator copies a green row's translation onto the parameters of its
// translatable context paths.
type Propagator struct {
	rules *rules.Table
	out   Writer
}

// NewPropagator creates a propagator over table writing to out. A nil table
// uses rules.Default(); a nil writer skips the project table write.
func NewPropagator(table *rules.Table, out Writer) *Propagator {
	if table == nil {
		table = rules.Default()
	}
	return &Propagator{rules: table, out: out}
}

// Propagate fills the parameters of a green row and writes them to the
// project table. Rows that are not green, have no context, or have no usable
// row id while a writer is set are left alone. Only the write itself can fail.
func (p *Propagator) Propagate(ctx context.Context, r row.Row) error {
	file, rowID := r.Key()

	if !row.HasTag(r, classify.TagGreen) {
		log.Debug().Str("file", file).Int("row", rowID).Msg("Row is not green, skipping propagation")
		return nil
	}
	paths, ok := r.GetContext()
	if !ok {
		log.Debug().Str("file", file).Int("row", rowID).Msg("Row has no context, skipping propagation")
		return nil
	}
	if p.out != nil && rowID < 0 {
		log.Debug().Str("file", file).Msg("Row has no row id, skipping propagation")
		return nil
	}

	params, ok := r.GetParameters()
	if !ok {
		params = make([]row.Parameter, 0, len(paths))
	}
	for i := len(params); i < len(paths); i++ {
		params = append(params, row.NewParameter(paths[i]))
	}

	translation := row.Translation(r)
	filled := 0
	for i, path := range paths {
		params[i].Translation = ""
		if rule, ok := p.rules.Match(path); ok {
			params[i].Translation = translation
			filled++
			log.Debug().Str("path", path).Str("rule", rule.Name).Msg("Path translation set")
		}
	}
	r.SetParameters(params)

	log.Debug().
		Str("file", file).
		Int("row", rowID).
		Int("filled", filled).
		Int("paths", len(paths)).
		Str("translation", textutil.Truncate(translation, 30)).
		Msg("Row propagated")

	if p.out == nil {
		return nil
	}
	if err := p.out.WriteParameters(ctx, file, rowID, params); err != nil {
		return fmt.Errorf("write parameters %s#%d: %w", file, rowID, err)
	}
	return nil
}
