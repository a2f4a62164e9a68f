package names

import "testing"

func TestIsSentinel(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"TBD", true},
		{"Staff", true},
		{"TBA", true},
		{"", true},
		{"   ", true},
		{"  TBD  ", true},
		{"tbd", false}, // sentinels are exact, case-sensitive
		{"Stafford, Jane", false},
		{"Smith, Jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsSentinel(tt.input); got != tt.expected {
				t.Errorf("IsSentinel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"Smith, Jane", FormatCommaSeparated},
		{"J. Smith", FormatInitialDot},
		{"Jane Smith", FormatSpaceSeparated},
		{"Smith", FormatSingleToken},
		{"TBD", FormatNone},
		{"", FormatNone},
		// Comma wins over dot when both appear.
		{"Smith, J.", FormatCommaSeparated},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DetectFormat(tt.input); got != tt.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
		wantFull  string
	}{
		{"comma separated", "Smith, Jane", "Jane", "Smith", "Jane Smith"},
		{"comma no space", "Smith,Jane", "Jane", "Smith", "Jane Smith"},
		{"initial dot", "J. Smith", "J", "Smith", "J Smith"},
		{"space separated", "Jane Smith", "Jane", "Smith", "Jane Smith"},
		{"multi-token last name", "Jane van Houten", "Jane", "van Houten", "Jane van Houten"},
		{"single token", "Smith", "", "Smith", "Smith"},
		{"whitespace padding", "  Smith, Jane  ", "Jane", "Smith", "Jane Smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got == nil {
				t.Fatalf("Normalize(%q) = nil", tt.input)
			}
			if got.FirstName != tt.wantFirst {
				t.Errorf("FirstName = %q, want %q", got.FirstName, tt.wantFirst)
			}
			if got.LastName != tt.wantLast {
				t.Errorf("LastName = %q, want %q", got.LastName, tt.wantLast)
			}
			if got.FullName != tt.wantFull {
				t.Errorf("FullName = %q, want %q", got.FullName, tt.wantFull)
			}
		})
	}
}

func TestNormalizeSentinels(t *testing.T) {
	for _, input := range []string{"", "   ", "TBD", "Staff", "TBA"} {
		if got := Normalize(input); got != nil {
			t.Errorf("Normalize(%q) = %+v, want nil", input, got)
		}
	}
}

// Normalizing twice must be a fixed point for space-separated output.
func TestNormalizeIdempotent(t *testing.T) {
	first := Normalize("Smith, Jane")
	second := Normalize(first.FullName)
	if second == nil {
		t.Fatal("second Normalize = nil")
	}
	if *first != *second {
		t.Errorf("Normalize not idempotent: %+v then %+v", first, second)
	}
}

func TestSearchText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Comma form swaps to "First Last".
		{"Smith, Jane", "Jane Smith"},
		{"Smith,Jane", "Jane Smith"},
		// Initial form degrades to the last name alone.
		{"J. Smith", "Smith"},
		// Already natural order passes through.
		{"Jane Smith", "Jane Smith"},
		{"Smith", "Smith"},
		{"  Jane Smith  ", "Jane Smith"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SearchText(tt.input); got != tt.expected {
				t.Errorf("SearchText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"José García", "jose garcia"},
		{"MÜLLER", "muller"},
		{"Smith", "smith"},
		{"  Padded  ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.expected {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFoldEqual(t *testing.T) {
	if !FoldEqual("José García", "jose garcia") {
		t.Error("FoldEqual should ignore case and diacritics")
	}
	if FoldEqual("Jane Smith", "John Smith") {
		t.Error("FoldEqual matched different names")
	}
}
