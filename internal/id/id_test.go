package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("req")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.HasPrefix(got, "req-") {
		t.Errorf("Generate() = %q, want req- prefix", got)
	}
	if len(got) != len("req-")+21 {
		t.Errorf("Generate() = %q, want 21-char id after prefix", got)
	}
}

func TestGenerateUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate("req")
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
