package rules

import (
	"regexp"
	"strings"
)

// Rule is a named matcher for one translatable context path shape. Source is
// the pattern as written in the Translator++ scripts.
type Rule struct {
	Name    string
	Source  string
	Pattern *regexp.Regexp
}

// Table is an ordered, immutable set of rules shared by the classifier and
// the propagator. The zero value matches nothing.
type Table struct {
	rules []Rule
}

// lineChar is what "." matches in the Translator++ script dialect: anything
// but a line terminator. Go's "." would also accept \r, U+2028 and U+2029.
const lineChar = `[^\n\r\x{2028}\x{2029}]`

// definitions are the translatable path shapes, in evaluation order.
var definitions = []struct {
	name    string
	pattern string
}{
	{"actor-note", `^Actors/\d+/note$`},
	{"animations", `^Animations.*?$`},
	{"armor-note", `^Armors/\d+/note$`},
	{"common-event-name", `^CommonEvents/\d+/name$`},
	{"common-event-comment", `^CommonEvents/\d+/list/\d+/comment$`},
	{"enemy-note", `^Enemies/\d+/note$`},
	{"item-note", `^Items/\d+/note$`},
	{"map-event", `^Map\d{3}/events/\d+/(name|note)$`},
	{"map-infos", `^Mapinfos.*?$`},
	{"skill-note", `^Skills/\d+/note$`},
	{"state-note", `^States/\d+/note$`},
	{"system-switch", `^System/switches/\d+$`},
	{"system-variable", `^System/variables/\d+$`},
	{"tilesets", `^Tilesets.*?$`},
	{"troop-name", `^Troops/\d+/name$`},
	{"weapon-note", `^Weapons/\d+/note$`},
	{"mz-plugin-command", `^.*?MZ Plugin Command.*?$`},
	{"control-variables", `^.*?Control Variables.*?$`},
}

var defaultTable = mustBuild()

// Default returns the process-wide rule table.
func Default() *Table {
	return defaultTable
}

func mustBuild() *Table {
	t := &Table{rules: make([]Rule, 0, len(definitions))}
	for _, d := range definitions {
		t.rules = append(t.rules, Rule{
			Name:    d.name,
			Source:  d.pattern,
			Pattern: regexp.MustCompile(strings.ReplaceAll(d.pattern, ".*?", lineChar+"*?")),
		})
	}
	return t
}

// New builds a table from already compiled rules. The slice is copied.
func New(rules ...Rule) *Table {
	return &Table{rules: append([]Rule(nil), rules...)}
}

// Match returns the first rule accepting path.
func (t *Table) Match(path string) (Rule, bool) {
	for _, r := range t.rules {
		if r.Pattern.MatchString(path) {
			return r, true
		}
	}
	return Rule{}, false
}

// Matches reports whether any rule accepts path.
func (t *Table) Matches(path string) bool {
	_, ok := t.Match(path)
	return ok
}

// Count returns how many of paths are accepted by the table.
func (t *Table) Count(paths []string) int {
	n := 0
	for _, p := range paths {
		if t.Matches(p) {
			n++
		}
	}
	return n
}

// Rules returns a copy of the rules in evaluation order.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}
