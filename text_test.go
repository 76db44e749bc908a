package slideshow

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

// runeWidth measures every rune as 10 units wide.
func runeWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxWidth float64
		want     []string
	}{
		{"empty", "", 100, nil},
		{"whitespace only", "   ", 100, nil},
		{"fits", "hi there", 100, []string{"hi there"}},
		{"breaks", "aaa bbb ccc", 70, []string{"aaa bbb", "ccc"}},
		{"one per line", "aaa bbb ccc", 30, []string{"aaa", "bbb", "ccc"}},
		{"long word alone", "a supercalifragilistic b", 50, []string{"a", "supercalifragilistic", "b"}},
		{"collapses spaces", "a   b", 100, []string{"a b"}},
		{"multibyte", "👋 👋👋 👋", 30, []string{"👋", "👋👋", "👋"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapWords(tt.msg, tt.maxWidth, runeWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapWords(%q, %v) = %q, want %q", tt.msg, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestEmbeddedFontsLoad(t *testing.T) {
	if RegularFont() == nil || BoldFont() == nil {
		t.Fatalf("embedded fonts failed to load: %v", fontsErr)
	}
	if w := RegularFont().Advance("hello", 14); w <= 0 {
		t.Errorf("Advance = %f, want > 0", w)
	}
	if w := RegularFont().Advance("hello", 28); w <= RegularFont().Advance("hello", 14) {
		t.Error("Advance does not grow with size")
	}
	if lh := BoldFont().LineHeight(12); lh <= 0 {
		t.Errorf("LineHeight = %f", lh)
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	if _, err := LoadFont([]byte("not a font")); err == nil {
		t.Error("LoadFont accepted garbage")
	}
}

func TestFontNilAdvance(t *testing.T) {
	var f *Font
	if f.Advance("x", 10) != 0 {
		t.Error("nil font advance should be 0")
	}
}
