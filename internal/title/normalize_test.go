package title

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "diacritics stripped",
			input:    "Amélie",
			expected: "amelie",
		},
		{
			name:     "tilde stripped",
			input:    "El Año del Descubrimiento",
			expected: "el ano del descubrimiento",
		},
		{
			name:     "punctuation removed",
			input:    "¿Qué hemos hecho?",
			expected: "que hemos hecho",
		},
		{
			name:     "apostrophes collapse within words",
			input:    "Petite Maman: L'amour",
			expected: "petite maman lamour",
		},
		{
			name:     "multiple spaces",
			input:    "  El   Sur  ",
			expected: "el sur",
		},
		{
			name:     "numbers preserved",
			input:    "2001: Una odisea del espacio",
			expected: "2001 una odisea del espacio",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "uppercase folded",
			input:    "EL ANO DEL DESCUBRIMIENTO",
			expected: "el ano del descubrimiento",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	// Accented and plain spellings must derive the same key: the equivalence
	// cache relies on this to recognize titles across sources.
	a := Normalize("El Año del Descubrimiento")
	b := Normalize("EL ANO DEL DESCUBRIMIENTO")
	if a != b {
		t.Errorf("normalized forms differ: %q vs %q", a, b)
	}
}
