package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectNumbersFromStart(t *testing.T) {
	text := `${dat[1]}は${dat[12]}を見た。${dat[1]}`

	got, mappings := Protect(text, 0)
	assert.Equal(t, "控制符1は控制符2を見た。控制符3", got)
	assert.Equal(t, []Mapping{
		{Original: "${dat[1]}", Placeholder: "控制符1", Index: 1},
		{Original: "${dat[12]}", Placeholder: "控制符2", Index: 2},
		{Original: "${dat[1]}", Placeholder: "控制符3", Index: 3},
	}, mappings)

	got, mappings = Protect(text, 3)
	assert.Equal(t, "控制符4は控制符5を見た。控制符6", got)
	assert.Equal(t, 6, mappings[2].Index)
}

func TestProtectWithoutCodes(t *testing.T) {
	got, mappings := Protect("こんにちは ${name} $dat[1]", 0)
	assert.Equal(t, "こんにちは ${name} $dat[1]", got)
	assert.Empty(t, mappings)
}

func TestRestore(t *testing.T) {
	_, mappings := Protect(`${dat[3]}と${dat[4]}`, 10)

	assert.Equal(t, "${dat[4]} and ${dat[3]}", Restore("控制符12 and 控制符11", mappings))
	assert.Equal(t, "${dat[3]} 控制符99 控制符110", Restore("控制符11 控制符99 控制符110", mappings))
	assert.Equal(t, "plain", Restore("plain", nil))
}

func TestRestoreRoundTrip(t *testing.T) {
	text := "${dat[1]}\n${dat[2]}は強い"
	protected, mappings := Protect(text, 0)
	assert.Equal(t, text, Restore(protected, mappings))
}

func TestSameCodes(t *testing.T) {
	assert.True(t, SameCodes("${dat[1]}a${dat[2]}", "b${dat[2]}${dat[1]}"))
	assert.False(t, SameCodes("${dat[1]}${dat[1]}", "${dat[1]}"))
	assert.False(t, SameCodes("${dat[1]}", "控制符1"))
	assert.True(t, SameCodes("none", "still none"))
}

func TestLineCount(t *testing.T) {
	cases := map[string]int{
		"":               0,
		"one":            1,
		"one\n":          1,
		"one\ntwo":       2,
		"one\r\ntwo\r\n": 2,
		"one\rtwo":       2,
		"\n\n":           2,
		"a\u2028b":       2,
		"a\x0cb\x1ec":    3,
	}
	for in, want := range cases {
		assert.Equal(t, want, LineCount(in), "%q", in)
	}
}
