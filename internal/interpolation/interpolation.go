// Package interpolation shields RPG Maker control codes such as ${dat[3]}
// from the translation model by swapping them for numbered placeholders.
package interpolation

import (
	"maps"
	"regexp"
	"strconv"
	"unicode/utf8"
)

// PlaceholderPrefix starts every placeholder. The model sees it as an
// ordinary word and keeps it in the output.
const PlaceholderPrefix = "控制符"

// Mapping stores the original control code and its placeholder.
type Mapping struct {
	Original    string `json:"original"`
	Placeholder string `json:"placeholder"`
	Index       int    `json:"index"`
}

var (
	codePattern        = regexp.MustCompile(`\$\{dat\[(\d+)\]\}`)
	placeholderPattern = regexp.MustCompile(PlaceholderPrefix + `(\d+)`)
)

// Protect replaces every control code in text with a placeholder numbered
// from start+1. Retries pass the previous count as start so each attempt
// shows the model different placeholders.
func Protect(text string, start int) (string, []Mapping) {
	var mappings []Mapping
	result := codePattern.ReplaceAllStringFunc(text, func(code string) string {
		index := start + len(mappings) + 1
		placeholder := PlaceholderPrefix + strconv.Itoa(index)
		mappings = append(mappings, Mapping{
			Original:    code,
			Placeholder: placeholder,
			Index:       index,
		})
		return placeholder
	})
	return result, mappings
}

// Restore puts the original control codes back. Placeholders the model
// invented are left as they are.
func Restore(translated string, mappings []Mapping) string {
	if len(mappings) == 0 {
		return translated
	}
	originals := make(map[string]string, len(mappings))
	for _, m := range mappings {
		originals[m.Placeholder] = m.Original
	}
	return placeholderPattern.ReplaceAllStringFunc(translated, func(p string) string {
		if orig, ok := originals[p]; ok {
			return orig
		}
		return p
	})
}

// Codes counts the control codes in text by their dat index.
func Codes(text string) map[string]int {
	counts := make(map[string]int)
	for _, m := range codePattern.FindAllStringSubmatch(text, -1) {
		counts[m[1]]++
	}
	return counts
}

// SameCodes reports whether a and b carry the same control codes, ignoring order.
func SameCodes(a, b string) bool {
	return maps.Equal(Codes(a), Codes(b))
}

// LineCount counts lines the way Translator++ splits them: \r\n, \n, \r,
// \v, \f, \x1c-\x1e, U+0085, U+2028 and U+2029 all end a line, and a
// trailing break does not open a new one.
func LineCount(text string) int {
	n := 0
	open := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if !isLineBreak(r) {
			open = true
			continue
		}
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		n++
		open = false
	}
	if open {
		n++
	}
	return n
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
