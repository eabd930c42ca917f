package similarity

import (
	"reflect"
	"testing"
)

func TestIsSameSeries(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "numbered sequel vs subtitled spin-off", a: "Fallout 3", b: "Fallout: New Vegas", want: true},
		{name: "franchise name contained", a: "The Legend of Zelda: Wind Waker", b: "Zelda", want: true},
		{name: "unrelated names", a: "Halo Infinite", b: "Hollow Knight", want: false},
		{name: "identical names are not similar", a: "Portal 2", b: "Portal 2", want: false},
		{name: "identical names ignoring case", a: "portal 2", b: "PORTAL 2", want: false},
		{name: "roman numeral sequel", a: "Dark Souls III", b: "Dark Souls", want: true},
		{name: "shared long first word", a: "Super Mario Bros.", b: "Super Mario Odyssey", want: true},
		{name: "short shared first word only", a: "Call of Duty", b: "Call of Juarez", want: false},
		{name: "same core before colon", a: "Grand Theft Auto V", b: "Grand Theft Auto: San Andreas", want: true},
		{name: "substring after normalization", a: "Mass Effect 2", b: "Mass Effect Andromeda", want: true},
		{name: "single short token contained", a: "Doom", b: "Doom Eternal", want: true},
		{name: "edition noise ignored", a: "Skyrim Special", b: "Skyrim (Anniversary Edition)", want: true},
		{name: "empty input", a: "", b: "Portal", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameSeries(tt.a, tt.b); got != tt.want {
				t.Errorf("IsSameSeries(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := IsSameSeries(tt.b, tt.a); got != tt.want {
				t.Errorf("IsSameSeries(%q, %q) = %v, want %v (reversed)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "The Witcher 3: Wild Hunt (Complete Edition)", want: "witcher wild hunt"},
		{input: "Final Fantasy VII Remake", want: "final fantasy"},
		{input: "Tomb Raider (2013)", want: "tomb raider"},
		{input: "Assassin's Creed II", want: "assassins creed"},
		{input: "  Halo   Infinite  ", want: "halo infinite"},
		{input: "The", want: "the"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The Legend of Zelda: Breath of the Wild")
	want := []string{"legend", "zelda", "breath", "wild"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}
