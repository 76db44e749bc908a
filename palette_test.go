package slideshow

import (
	"image/color"
	"testing"
)

func TestHexParses(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, false},
		{"#0f0", color.NRGBA{0, 255, 0, 255}, false},
		{"#87CEEB", color.NRGBA{0x87, 0xce, 0xeb, 255}, false},
		{"red", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Hex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Hex(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			got := color.NRGBAModel.Convert(c).(color.NRGBA)
			if got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMustHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHex did not panic on bad input")
		}
	}()
	MustHex("nope")
}

func TestWithAlpha(t *testing.T) {
	got := WithAlpha(color.White, 0.5)
	if got.R != 255 || got.A != 128 {
		t.Errorf("WithAlpha = %v", got)
	}
	if WithAlpha(color.White, 2).A != 255 {
		t.Error("alpha not clamped to 1")
	}
}

func TestGradientEndpointsAndMidpoint(t *testing.T) {
	g := MustGradient(0, "#000000", 1, "#ffffff")
	if c := g.At(0); c.R != 0 || c.A != 255 {
		t.Errorf("At(0) = %v", c)
	}
	if c := g.At(1); c.R != 255 {
		t.Errorf("At(1) = %v", c)
	}
	if c := g.At(0.5); c.R < 126 || c.R > 129 {
		t.Errorf("At(0.5) = %v, want mid grey", c)
	}
	if c := g.At(-3); c.R != 0 {
		t.Errorf("At(-3) = %v, want clamped to start", c)
	}
}

func TestGradientSortsStops(t *testing.T) {
	g := MustGradient(1, "#ffffff", 0, "#000000")
	if g[0].At != 0 || g[1].At != 1 {
		t.Errorf("stops not sorted: %+v", g)
	}
}

func TestGradientTransparentStop(t *testing.T) {
	g := MustGradient(0, "#ffff00", 1, "transparent")
	end := g.At(1)
	if end.A != 0 {
		t.Errorf("At(1).A = %d, want 0", end.A)
	}
	if end.R != 255 || end.G != 255 {
		t.Errorf("transparent stop lost neighbour hue: %v", end)
	}
}

func TestParseGradientErrors(t *testing.T) {
	if _, err := ParseGradient(0, "#fff", 1); err == nil {
		t.Error("odd args accepted")
	}
	if _, err := ParseGradient("x", "#fff"); err == nil {
		t.Error("non-numeric position accepted")
	}
	if _, err := ParseGradient(0, 42); err == nil {
		t.Error("non-string color accepted")
	}
	if _, err := ParseGradient(0, "#zzzzzz"); err == nil {
		t.Error("bad hex accepted")
	}
}

func TestDarken(t *testing.T) {
	d := color.NRGBAModel.Convert(Darken(MustHex("#c41e3a"), 0.5)).(color.NRGBA)
	orig := color.NRGBAModel.Convert(MustHex("#c41e3a")).(color.NRGBA)
	if d.R >= orig.R {
		t.Errorf("Darken did not darken: %v vs %v", d, orig)
	}
}
