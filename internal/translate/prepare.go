package translate

import (
	"strings"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/interpolation"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/textutil"
)

// Segment is one piece of a value as the backend would first see it. Tag is
// the tag head up to and including its colon, or "" for an untagged value.
type Segment struct {
	Tag              string                  `json:"tag,omitempty"`
	Text             string                  `json:"text"`
	Protected        string                  `json:"protected"`
	Placeholders     []interpolation.Mapping `json:"placeholders,omitempty"`
	Lines            int                     `json:"lines"`
	NeedsTranslation bool                    `json:"needsTranslation"`
}

// Prepare splits data the way Data does and reports the first attempt for
// each piece without calling a backend.
func Prepare(data string) []Segment {
	spans, tagged := tagSpans(data)
	if !tagged {
		return []Segment{prepareText("", data)}
	}
	segments := make([]Segment, 0, len(spans))
	for _, s := range spans {
		segments = append(segments, prepareText(s.head, s.body))
	}
	return segments
}

func prepareText(tag, text string) Segment {
	protected, mappings := interpolation.Protect(text, 0)
	protected = strings.ReplaceAll(protected, "\u3000", "  ")
	return Segment{
		Tag:              tag,
		Text:             text,
		Protected:        protected,
		Placeholders:     mappings,
		Lines:            interpolation.LineCount(text),
		NeedsTranslation: textutil.ContainsJapanese(protected),
	}
}
