package rules

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAcceptsCanonicalPaths(t *testing.T) {
	cases := map[string]string{
		"Actors/1/note":                  "actor-note",
		"Animations":                     "animations",
		"Animations/12/name":             "animations",
		"Armors/4/note":                  "armor-note",
		"CommonEvents/7/name":            "common-event-name",
		"CommonEvents/7/list/15/comment": "common-event-comment",
		"Enemies/30/note":                "enemy-note",
		"Items/2/note":                   "item-note",
		"Map001/events/3/name":           "map-event",
		"Map123/events/45/note":          "map-event",
		"Mapinfos/9/name":                "map-infos",
		"Skills/10/note":                 "skill-note",
		"States/5/note":                  "state-note",
		"System/switches/1":              "system-switch",
		"System/variables/20":            "system-variable",
		"Tilesets/1/name":                "tilesets",
		"Troops/8/name":                  "troop-name",
		"Weapons/6/note":                 "weapon-note",

		"Map002/events/1/pages/0/list/4 MZ Plugin Command": "mz-plugin-command",
		"CommonEvents/1/list/2/Control Variables/value":    "control-variables",
	}

	table := Default()
	for path, want := range cases {
		rule, ok := table.Match(path)
		if assert.True(t, ok, "expected %q to match", path) {
			assert.Equal(t, want, rule.Name, "rule for %q", path)
		}
	}
}

func TestDefaultRejectsNearMisses(t *testing.T) {
	paths := []string{
		"",
		"Foo/Bar",
		"Actors/x/note",
		"Actors/1/note/extra",
		"actors/1/note",
		"Actors/1/name",
		"Actors/１/note",
		"Map01/events/3/name",
		"Map0001/events/3/name",
		"Map001/events/3/page",
		"CommonEvents/7/list/x/comment",
		"System/switches/",
		"System/variables/a",
		"Troops/8/note",
		"Animations\n",
		"Tilesets\r",
		"Mapinfos\u2028",
		"MZ Plugin Command\n",
		"XAnimations",
	}

	table := Default()
	for _, p := range paths {
		assert.False(t, table.Matches(p), "expected %q not to match", p)
	}
}

func TestFirstMatchWinsOnPathologicalStrings(t *testing.T) {
	rule, ok := Default().Match("Control Variables then MZ Plugin Command")
	require.True(t, ok)
	assert.Equal(t, "mz-plugin-command", rule.Name)
}

func TestCount(t *testing.T) {
	table := Default()
	assert.Equal(t, 0, table.Count(nil))
	assert.Equal(t, 2, table.Count([]string{"Actors/1/note", "Foo/Bar", "System/switches/3"}))
}

func TestRulesReturnsCopy(t *testing.T) {
	table := Default()
	require.Equal(t, 18, table.Len())

	rs := table.Rules()
	rs[0] = Rule{Name: "clobbered"}

	assert.Equal(t, "actor-note", table.Rules()[0].Name)
	assert.Equal(t, `^Actors/\d+/note$`, table.Rules()[0].Source)
}

func TestNewAndZeroTable(t *testing.T) {
	var zero Table
	assert.False(t, zero.Matches("Actors/1/note"))

	custom := New(Rule{Name: "only-foo", Source: `^Foo$`, Pattern: regexp.MustCompile(`^Foo$`)})
	assert.True(t, custom.Matches("Foo"))
	assert.False(t, custom.Matches("Actors/1/note"))
}
