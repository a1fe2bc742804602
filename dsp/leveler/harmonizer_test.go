package leveler

import (
	"math"
	"testing"
)

func TestHasEnoughProximity(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Group
		proximity int64
		want      bool
	}{
		{"overlap", grp(0, 10, 0, 1), grp(5, 15, 5, -1), 0, true},
		{"touching", grp(0, 10, 0, 1), grp(10, 15, 10, -1), 0, true},
		{"gap within reach", grp(0, 10, 0, 1), grp(14, 15, 14, -1), 4, true},
		{"gap beyond reach", grp(0, 10, 0, 1), grp(15, 16, 15, -1), 4, false},
		{"reversed order", grp(20, 30, 20, 1), grp(0, 10, 0, -1), 9, false},
		{"reversed within reach", grp(20, 30, 20, 1), grp(0, 10, 0, -1), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasEnoughProximity(tt.a, tt.b, tt.proximity); got != tt.want {
				t.Fatalf("HasEnoughProximity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHarmonize(t *testing.T) {
	const eps = 1e-12

	t.Run("positive bigger", func(t *testing.T) {
		pos := []Group{withFactor(grp(0, 10, 0, 1), 10)}
		neg := []Group{withFactor(grp(5, 15, 5, -1), 1)}

		if n := Harmonize(pos, neg, 0); n != 1 {
			t.Fatalf("Harmonize() = %d, want 1", n)
		}
		if math.Abs(pos[0].Factor-20.0/11) > eps || neg[0].Factor != 1 {
			t.Fatalf("factors = %v, %v, want %v, 1", pos[0].Factor, neg[0].Factor, 20.0/11)
		}
	})

	t.Run("negative bigger", func(t *testing.T) {
		pos := []Group{withFactor(grp(0, 10, 0, 1), 2)}
		neg := []Group{withFactor(grp(5, 15, 5, -1), 4)}

		Harmonize(pos, neg, 0)
		if pos[0].Factor != 2 || math.Abs(neg[0].Factor-24.0/11) > eps {
			t.Fatalf("factors = %v, %v, want 2, %v", pos[0].Factor, neg[0].Factor, 24.0/11)
		}
	})

	t.Run("far apart", func(t *testing.T) {
		pos := []Group{withFactor(grp(0, 10, 0, 1), 2)}
		neg := []Group{withFactor(grp(500, 510, 500, -1), 4)}

		if n := Harmonize(pos, neg, 100); n != 0 {
			t.Fatalf("Harmonize() = %d, want 0", n)
		}
		if pos[0].Factor != 2 || neg[0].Factor != 4 {
			t.Fatalf("factors changed: %v, %v", pos[0].Factor, neg[0].Factor)
		}
	})

	t.Run("empty", func(t *testing.T) {
		pos := []Group{withFactor(grp(0, 10, 0, 1), 2)}
		if n := Harmonize(pos, nil, 100); n != 0 {
			t.Fatalf("Harmonize() = %d, want 0", n)
		}
	})

	t.Run("walk", func(t *testing.T) {
		pos := []Group{
			withFactor(grp(0, 10, 0, 1), 2),
			withFactor(grp(100, 110, 100, 1), 3),
		}
		neg := []Group{
			withFactor(grp(5, 20, 5, -1), 4),
			withFactor(grp(105, 120, 105, -1), 8),
		}

		if n := Harmonize(pos, neg, 0); n != 2 {
			t.Fatalf("Harmonize() = %d, want 2", n)
		}
		if math.Abs(neg[0].Factor-24.0/11) > eps {
			t.Fatalf("neg[0].Factor = %v, want %v", neg[0].Factor, 24.0/11)
		}
		if math.Abs(neg[1].Factor-38.0/11) > eps {
			t.Fatalf("neg[1].Factor = %v, want %v", neg[1].Factor, 38.0/11)
		}
		if pos[0].Factor != 2 || pos[1].Factor != 3 {
			t.Fatalf("positive factors changed: %v, %v", pos[0].Factor, pos[1].Factor)
		}
	})
}

func TestProximityFrames(t *testing.T) {
	if got := ProximityFrames(1, 44100); got != 44100 {
		t.Fatalf("ProximityFrames(1, 44100) = %d, want 44100", got)
	}
	if got := ProximityFrames(0.5, 11025); got != 5513 {
		t.Fatalf("ProximityFrames(0.5, 11025) = %d, want 5513", got)
	}
}
