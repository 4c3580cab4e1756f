package safemath

import (
	"math"
	"testing"
)

func TestAdd64(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{"zero plus zero", 0, 0, 0, false},
		{"small values", 1, 2, 3, false},
		{"near max safe", math.MaxUint64 - 10, 5, math.MaxUint64 - 5, false},
		{"at boundary", math.MaxUint64 - 1, 1, math.MaxUint64, false},
		{"overflow max plus one", math.MaxUint64, 1, 0, true},
		{"overflow max plus max", math.MaxUint64, math.MaxUint64, 0, true},
		{"overflow half max doubled", math.MaxUint64/2 + 1, math.MaxUint64/2 + 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Add64(tt.a, tt.b)
			if ok == tt.wantErr {
				t.Errorf("Add64(%d, %d) ok = %v, wantErr %v", tt.a, tt.b, ok, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Add64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMul64(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{"zero times zero", 0, 0, 0, false},
		{"zero times max", 0, math.MaxUint64, 0, false},
		{"small values", 7, 8, 56, false},
		{"one times max", 1, math.MaxUint64, math.MaxUint64, false},
		{"max div 2 times 2", math.MaxUint64 / 2, 2, math.MaxUint64 - 1, false},
		{"overflow max times two", math.MaxUint64, 2, 0, true},
		{"overflow sqrt boundary", 1 << 32, 1 << 32, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mul64(tt.a, tt.b)
			if ok == tt.wantErr {
				t.Errorf("Mul64(%d, %d) ok = %v, wantErr %v", tt.a, tt.b, ok, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Mul64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSaturatingAdd64(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want uint64
	}{
		{"no saturation", 40, 60, 100},
		{"at boundary", math.MaxUint64 - 1, 1, math.MaxUint64},
		{"saturates", math.MaxUint64, 1, math.MaxUint64},
		{"saturates large", math.MaxUint64 - 5, 100, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SaturatingAdd64(tt.a, tt.b); got != tt.want {
				t.Errorf("SaturatingAdd64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
