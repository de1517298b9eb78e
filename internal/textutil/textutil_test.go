package textutil

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"Actors/1/note", 6, "Actors..."},
		{"翻译文本很长", 2, "翻译..."},
		{"", 0, ""},
		{"x", -1, "..."},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestContainsJapanese(t *testing.T) {
	cases := map[string]bool{
		"こんにちは":      true,
		"カタカナ":       true,
		"ー":          true,
		"漢字だけ":       true,
		"漢字":         false,
		"Hello":      false,
		"控制符1":       false,
		"":           false,
		"\u3000全角空白": false,
	}
	for in, want := range cases {
		if got := ContainsJapanese(in); got != want {
			t.Errorf("ContainsJapanese(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestHash(t *testing.T) {
	if Hash("a") == Hash("b") {
		t.Fatal("distinct inputs share a hash")
	}
	if got := Hash(""); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("Hash(\"\") = %s", got)
	}
}
