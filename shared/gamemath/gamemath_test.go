package gamemath

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"same point", 5, 5, 5, 5, 0},
		{"horizontal", 0, 0, 3, 0, 3},
		{"vertical", 0, 0, 0, 4, 4},
		{"pythagorean", 0, 0, 3, 4, 5},
		{"negative coords", -3, -4, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.x1, tt.y1, tt.x2, tt.y2); got != tt.want {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"zero vector stays zero", 0, 0, 0, 0},
		{"unit x", 1, 0, 1, 0},
		{"scaled x", 10, 0, 1, 0},
		{"negative y", 0, -2, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := Normalize(tt.x, tt.y)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("Normalize() = (%v, %v), want (%v, %v)", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestNormalizeDiagonalLength(t *testing.T) {
	x, y := Normalize(1, 1)
	if l := math.Sqrt(x*x + y*y); math.Abs(l-1) > 1e-9 {
		t.Errorf("length = %v, want 1", l)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below", -5, 0, 10, 0},
		{"inside", 5, 0, 10, 5},
		{"above", 15, 0, 10, 10},
		{"at low edge", 0, 0, 10, 0},
		{"at high edge", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyFriction(t *testing.T) {
	tests := []struct {
		name            string
		speed, friction float64
		want            float64
	}{
		{"positive above friction", 10, 3, 7},
		{"negative above friction", -10, 3, -7},
		{"below friction snaps to zero", 2, 3, 0},
		{"already zero", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyFriction(tt.speed, tt.friction); got != tt.want {
				t.Errorf("ApplyFriction() = %v, want %v", got, tt.want)
			}
		})
	}
}
