package normalize

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"  Cztery  ", "4"},
		{"x = 4", "x = 4"},
		{"iks równa się cztery", "x = 4"},
		{"jedna druga plus jedna trzecia", "1/2 + 1/3"},
		{"pięć szóstych", "5/6"},
		{"połowa", "1/2"},
		{"trzy czwarte minus pół", "3/4 - 1/2"},
		{"dwadzieścia pięć", "25"},
		{"trzydzieści", "30"},
		{"dwanaście przecinek pięćdziesiąt sześć", "12,56"},
		{"zero kropka dwadzieścia pięć", "0.25"},
		{"dwadzieścia procent", "20%"},
		{"Cztery.", "4"},
		{"dwa razy trzy", "2 * 3"},
		{"osiem podzielić przez cztery", "8 : 4"},
		{"1/2   +\t1/3", "1/2 + 1/3"},
		{"nie wiem", "nie wiem"},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize_FractionPhraseOrder(t *testing.T) {
	got := Normalize("jedna druga plus jedna trzecia")
	i := strings.Index(got, "1/2")
	j := strings.Index(got, "+")
	k := strings.Index(got, "1/3")
	if i < 0 || j < 0 || k < 0 || !(i < j && j < k) {
		t.Errorf("Normalize = %q, want 1/2, +, 1/3 in order", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"jedna druga plus jedna trzecia",
		"Dwanaście przecinek pięćdziesiąt sześć cm",
		"dwadzieścia 5 , 5 %",
		"x równa się czterdzieści cztery",
		"pół i ćwierć",
		"f(5) = 13",
		"12 cm²",
		"  ZERO   kropka   pięć  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_FractionTokensUntouched(t *testing.T) {
	got := Normalize("1/2 jedna")
	if got != "1/2 1" {
		t.Errorf("Normalize = %q, want %q", got, "1/2 1")
	}
}
