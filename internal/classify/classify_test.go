package classify

import (
	"testing"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		context []string
		tags    []string
		want    []string
	}{
		{"full match", []string{"Actors/1/note"}, nil, []string{TagYellow}},
		{"partial match", []string{"Actors/1/note", "Foo/Bar"}, nil, []string{TagGreen}},
		{"no match", []string{"Foo/Bar"}, []string{"red"}, []string{"red"}},
		{"empty context", []string{}, []string{"red"}, []string{"red"}},
		{"stale green replaced", []string{"Actors/1/note", "System/variables/2"}, []string{"green", "red"}, []string{"red", TagYellow}},
		{"stale yellow cleared", []string{"Foo/Bar"}, []string{"yellow"}, []string{}},
		{"duplicate labels removed", []string{"Actors/1/note", "Foo"}, []string{"yellow", "green", "yellow"}, []string{TagGreen}},
	}

	c := NewClassifier(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := &row.Record{Context: tc.context, Tags: tc.tags}
			c.Classify(r)
			assert.Equal(t, tc.want, r.Tags)
		})
	}
}

func TestClassifyWithoutContextIsNoop(t *testing.T) {
	r := &row.Record{Tags: []string{"yellow", "green"}}
	NewClassifier(nil).Classify(r)
	assert.Equal(t, []string{"yellow", "green"}, r.Tags)

	b, err := row.DecodeBinding([]byte(`{"context": "Actors/1/note", "tags": ["green"]}`))
	require.NoError(t, err)
	NewClassifier(nil).Classify(b)
	assert.Equal(t, []string{"green"}, b.GetTags())
}

func TestClassifyIsIdempotent(t *testing.T) {
	c := NewClassifier(rules.Default())
	for _, context := range [][]string{
		{"Actors/1/note"},
		{"Actors/1/note", "Foo/Bar"},
		{"Foo/Bar"},
	} {
		r := &row.Record{Context: context, Tags: []string{"red"}}
		c.Classify(r)
		once := append([]string(nil), r.Tags...)
		c.Classify(r)
		assert.Equal(t, once, r.Tags)
		assert.False(t, row.HasTag(r, TagYellow) && row.HasTag(r, TagGreen))
	}
}

func TestClassifyBinding(t *testing.T) {
	b, err := row.DecodeBinding([]byte(`{"context": ["Map001/events/2/name", "Map001/events/2/pages/0/list/1/parameters/0"], "tags": ["yellow"]}`))
	require.NoError(t, err)

	NewClassifier(nil).Classify(b)
	assert.Equal(t, []string{TagGreen}, b.GetTags())
}

func TestEvaluate(t *testing.T) {
	c := NewClassifier(nil)
	assert.Equal(t, Result{Matched: 1, Total: 2, Tag: TagGreen}, c.Evaluate([]string{"Troops/1/name", "x"}))
	assert.Equal(t, Result{Matched: 0, Total: 0}, c.Evaluate(nil))
	assert.Equal(t, Result{Matched: 2, Total: 2, Tag: TagYellow}, c.Evaluate([]string{"Tilesets", "Mapinfos/1"}))
}

func TestInjectedTableIsUsed(t *testing.T) {
	c := NewClassifier(rules.New())
	r := &row.Record{Context: []string{"Actors/1/note"}}
	c.Classify(r)
	assert.Empty(t, r.Tags)
}
