package valueobject

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain integer", "100", 100},
		{"decimal comma", "123,45", 123.45},
		{"full currency format", "R$ 1.234,56", 1234.56},
		{"currency no space", "R$99,90", 99.9},
		{"thousands only", "1.000", 1000},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"negative", "-5", 0},
		{"negative currency", "R$ -10,00", 0},
		{"above cap", "9999999999", 999999999},
		{"at cap", "999999999", 999999999},
		{"whitespace padded", "  250,00  ", 250},
		{"mixed garbage digits", "12abc", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.raw)
			if got != tc.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestClampAmount(t *testing.T) {
	if got := ClampAmount(-1); got != 0 {
		t.Errorf("expected negative values to clamp to 0, got %v", got)
	}
	if got := ClampAmount(1_000_000_000); got != 999_999_999 {
		t.Errorf("expected values above the cap to clamp, got %v", got)
	}
	if got := ClampAmount(42.5); got != 42.5 {
		t.Errorf("expected in-range value to pass through, got %v", got)
	}
}
