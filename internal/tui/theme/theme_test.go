package theme

import "testing"

func TestCatppuccinMocha_ColorPalette(t *testing.T) {
	t.Parallel()

	th := Current()
	if th.Name != "catppuccin-mocha" {
		t.Fatalf("expected catppuccin-mocha theme, got %s", th.Name)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Primary (Mauve)", th.Primary, "#cba6f7"},
		{"Secondary (Lavender)", th.Secondary, "#b4befe"},
		{"BgBase", th.BgBase, "#1e1e2e"},
		{"FgBase (Text)", th.FgBase, "#cdd6f4"},
		{"Error (Red)", th.Error, "#f38ba8"},
		{"Success (Green)", th.Success, "#a6e3a1"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.expected, tt.got)
		}
	}
}

func TestCurrent_StylesBuiltOnce(t *testing.T) {
	t.Parallel()

	if Current() != Current() {
		t.Fatal("expected Current to return the same theme")
	}
	if Current().S() != Current().S() {
		t.Fatal("expected styles to be cached")
	}
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		pos  float64
		want string
	}{
		{"#000000", "#ffffff", 0, "#000000"},
		{"#000000", "#ffffff", 1, "#ffffff"},
		{"#000000", "#ff0080", 0.5, "#7f0040"},
	}
	for _, tt := range tests {
		if got := InterpolateColor(tt.a, tt.b, tt.pos); got != tt.want {
			t.Errorf("InterpolateColor(%s, %s, %v) = %s, want %s", tt.a, tt.b, tt.pos, got, tt.want)
		}
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	t.Parallel()

	r, g, b := ParseHexColor("#abc")
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("expected zero color for short hex, got %d %d %d", r, g, b)
	}
}
