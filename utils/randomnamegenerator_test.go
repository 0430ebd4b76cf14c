package utils

import (
	"testing"
)

func TestRandomNameGeneratorUnique(t *testing.T) {
	var rng RandomNameGenerator
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		name := rng.RandomName()
		if name == "" {
			t.Fatal("empty name")
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate name %q after %d draws", name, i)
		}
		seen[name] = struct{}{}
	}
}

func TestRandomNameGeneratorDeterministic(t *testing.T) {
	var a, b RandomNameGenerator
	if an, bn := a.RandomName(), b.RandomName(); an != bn {
		t.Errorf("first names differ: %q vs %q", an, bn)
	}
}

func TestFloatArrayConv(t *testing.T) {
	in := []float32{1, -2.5, 0, 3.25}
	back := FloatArray64to32(FloatArray32to64(in))
	if len(back) != len(in) {
		t.Fatalf("length = %d", len(back))
	}
	for i := range in {
		if back[i] != in[i] {
			t.Errorf("[%d] = %v; expected %v", i, back[i], in[i])
		}
	}
}
