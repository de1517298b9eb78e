// Package translate prepares RPG Maker text for a translation backend and
// checks what comes back. Control codes are shielded by placeholders,
// <SG...:...> plugin tags are translated by content only, and text without
// kana passes through untouched.
package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/interpolation"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/textutil"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultMaxAttempts bounds the retries of one text.
	DefaultMaxAttempts = 10
	// DefaultCacheSize is the number of backend replies kept in memory.
	DefaultCacheSize = 1024
)

var tagPattern = regexp.MustCompile(`(?s)<SG.*?>`)

// GlossaryEntry is one source/target hint handed to the backend.
type GlossaryEntry struct {
	Src  string `json:"src" yaml:"src"`
	Dst  string `json:"dst" yaml:"dst"`
	Info string `json:"info,omitempty" yaml:"info,omitempty"`
}

// Request is a single backend call.
type Request struct {
	Text     string
	History  []string
	Glossary []GlossaryEntry
}

// Backend translates Japanese text. Implementations must be safe for
// concurrent use.
type Backend interface {
	Translate(ctx context.Context, req Request) (string, error)
}

// Translator drives a Backend over RPG Maker text.
type Translator struct {
	backend     Backend
	glossary    []GlossaryEntry
	maxAttempts int
	cacheSize   int
	cache       *lru.Cache[string, string]
}

// Option configures a Translator.
type Option func(*Translator)

// WithGlossary adds entries that are sent whenever their Src occurs in the text.
func WithGlossary(entries ...GlossaryEntry) Option {
	return func(t *Translator) {
		t.glossary = append(t.glossary, entries...)
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 mean 1.
func WithMaxAttempts(n int) Option {
	return func(t *Translator) {
		t.maxAttempts = max(n, 1)
	}
}

// WithCacheSize overrides DefaultCacheSize. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(t *Translator) {
		t.cacheSize = n
	}
}

// New creates a translator over backend.
func New(backend Backend, opts ...Option) (*Translator, error) {
	t := &Translator{
		backend:     backend,
		maxAttempts: DefaultMaxAttempts,
		cacheSize:   DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.cacheSize > 0 {
		cache, err := lru.New[string, string](t.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create translation cache: %w", err)
		}
		t.cache = cache
	}
	return t, nil
}

// Data translates a value that may hold <SG...:...> plugin tags. When tags
// are present only the text after each tag's first colon is translated and
// everything outside the tags is kept. Tags without a colon are left alone.
func (t *Translator) Data(ctx context.Context, data string, history []string) (string, error) {
	spans, tagged := tagSpans(data)
	if !tagged {
		return t.Text(ctx, data, history)
	}
	for _, s := range spans {
		out, err := t.Text(ctx, s.body, history)
		if err != nil {
			return "", err
		}
		data = strings.ReplaceAll(data, s.raw, s.head+out+">")
	}
	return data, nil
}

// Text translates one message. Control codes are replaced by placeholders
// for the backend and restored afterwards. When the reply loses or invents a
// control code, or changes the number of lines, the text is sent again with
// fresh placeholder numbers. After the last attempt the final reply is
// returned as is.
func (t *Translator) Text(ctx context.Context, text string, history []string) (string, error) {
	lines := interpolation.LineCount(text)
	next := 0

	var result string
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		protected, mappings := interpolation.Protect(text, next)
		next += len(mappings)

		codes := make([]GlossaryEntry, len(mappings))
		for i, m := range mappings {
			codes[i] = GlossaryEntry{Src: m.Placeholder, Dst: m.Placeholder}
		}

		out, err := t.call(ctx, protected, history, codes, attempt > 1)
		if err != nil {
			return "", fmt.Errorf("translate text: %w", err)
		}
		result = interpolation.Restore(out, mappings)

		switch {
		case !interpolation.SameCodes(text, result):
			log.Debug().Int("attempt", attempt).Msg("Control codes changed, retrying")
		case interpolation.LineCount(result) != lines:
			log.Debug().Int("attempt", attempt).Msg("Line count changed, retrying")
		default:
			return result, nil
		}
	}

	log.Warn().
		Int("attempts", t.maxAttempts).
		Str("text", textutil.Truncate(text, 40)).
		Str("result", textutil.Truncate(result, 40)).
		Msg("Stopped retrying translation")
	return result, nil
}

// call sends one request. Text without kana is returned without a backend
// call. fresh skips the cache lookup so a retry gets a new reply.
func (t *Translator) call(ctx context.Context, text string, history []string, codes []GlossaryEntry, fresh bool) (string, error) {
	text = strings.ReplaceAll(text, "\u3000", "  ")
	if !textutil.ContainsJapanese(text) {
		return text, nil
	}

	glossary := codes
	for _, e := range t.glossary {
		if strings.Contains(text, e.Src) {
			glossary = append(glossary, e)
		}
	}
	req := Request{Text: text, History: history, Glossary: glossary}

	key := cacheKey(req)
	if t.cache != nil && !fresh {
		if v, ok := t.cache.Get(key); ok {
			return v, nil
		}
	}

	out, err := t.backend.Translate(ctx, req)
	if err != nil {
		return "", err
	}
	if t.cache != nil {
		t.cache.Add(key, out)
	}
	return out, nil
}

func cacheKey(req Request) string {
	var b strings.Builder
	b.WriteString(req.Text)
	for _, h := range req.History {
		b.WriteString("\x00h")
		b.WriteString(h)
	}
	for _, e := range req.Glossary {
		b.WriteString("\x00g")
		b.WriteString(e.Src)
		b.WriteString("\x1f")
		b.WriteString(e.Dst)
		b.WriteString("\x1f")
		b.WriteString(e.Info)
	}
	return textutil.Hash(b.String())
}

// span is one <SG...:...> tag split at its first colon.
type span struct {
	raw  string
	head string
	body string
}

// tagSpans finds the plugin tags of data. tagged reports whether any tag was
// found; spans only holds those with a colon.
func tagSpans(data string) (spans []span, tagged bool) {
	tags := tagPattern.FindAllString(data, -1)
	for _, raw := range tags {
		i := strings.Index(raw, ":")
		if i == -1 {
			continue
		}
		spans = append(spans, span{
			raw:  raw,
			head: raw[:i+1],
			body: raw[i+1 : len(raw)-1],
		})
	}
	return spans, len(tags) > 0
}
