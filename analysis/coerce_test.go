package analysis

import "testing"

func TestLenientNumericCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{" 7.5 ", 7.5, true},
		{"", 0, true},
		{"nan", 0, true},
		{"abc", 0, false},
		{"Inf", 0, false},
		{"-3", -3, true},
	}
	for _, tc := range cases {
		got, ok := LenientNumericCoercion(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("LenientNumericCoercion(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		part, whole int
		want        float64
	}{
		{45, 50, 90.0},
		{0, 0, 0.0},
		{2, 3, 66.7},
		{1, 3, 33.3},
		{1, 8, 12.5},
		{80, 100, 80.0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.part, tc.whole); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestRoundTenthHalfEven(t *testing.T) {
	if got := RoundTenth(0.25); got != 0.2 {
		t.Fatalf("RoundTenth(0.25) = %v, want 0.2", got)
	}
	if got := RoundTenth(0.35); got != 0.4 {
		t.Fatalf("RoundTenth(0.35) = %v, want 0.4", got)
	}
}
