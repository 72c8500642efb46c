package tokenizer

import (
	"strings"
	"testing"
)

func TestTokenString(t *testing.T) {
	tok := New(newTestDict(t))

	tokens := collectTokens(t, tok, "東京")
	if got, want := tokens[0].String(), "東京\t名詞,固有名詞,*,*,東京,トウキョウ,トーキョー"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	tokens = collectTokens(t, tok, "タワー")
	got := tokens[0].String()
	if !strings.HasPrefix(got, "タワー\t名詞,一般,") {
		t.Errorf("Unknown token String() = %q, want 名詞,一般 prefix after the surface", got)
	}
	if !strings.Contains(got, "タワー,*,*") {
		t.Errorf("Unknown token String() = %q, want surface as base form and * readings", got)
	}
}

func TestNodeClassString(t *testing.T) {
	tests := []struct {
		c    NodeClass
		want string
	}{
		{ClassKnown, "KNOWN"},
		{ClassUnknown, "UNKNOWN"},
		{NodeClass(42), "INVALID"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("NodeClass(%d).String() = %q, want %q", int(tt.c), got, tt.want)
		}
	}
}

func TestLoadErrorFormat(t *testing.T) {
	e := &LoadError{Path: "/tmp/dict", Reason: "decode entries.bin"}
	if got := e.Error(); !strings.Contains(got, "/tmp/dict") || !strings.Contains(got, "decode entries.bin") {
		t.Errorf("Error() = %q, want path and reason included", got)
	}
	if e.Unwrap() != nil {
		t.Error("Unwrap without cause should be nil")
	}
}
