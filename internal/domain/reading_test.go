package domain

import (
	"testing"
)

func TestNewDistanceReading(t *testing.T) {
	tests := []struct {
		name    string
		raw     int
		wantErr bool
	}{
		{
			name:    "valid reading",
			raw:     500,
			wantErr: false,
		},
		{
			name:    "zero raw is valid",
			raw:     0,
			wantErr: false,
		},
		{
			name:    "negative raw is invalid",
			raw:     -10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := NewDistanceReading(tt.raw)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if reading.Raw != tt.raw {
				t.Errorf("expected raw %v, got %v", tt.raw, reading.Raw)
			}
		})
	}
}

func TestDistanceReading_IsNear(t *testing.T) {
	tests := []struct {
		raw  int
		want bool
	}{
		{raw: 0, want: true},
		{raw: 29, want: true},
		{raw: 30, want: false},
		{raw: 500, want: false},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			reading, _ := NewDistanceReading(tt.raw)
			if got := reading.IsNear(); got != tt.want {
				t.Errorf("IsNear() = %v, want %v for raw %v", got, tt.want, tt.raw)
			}
		})
	}
}

func TestDistanceReading_Proximity(t *testing.T) {
	tests := []struct {
		raw  int
		want string
	}{
		{raw: 10, want: "Near"},
		{raw: 42, want: "Far"},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			reading, _ := NewDistanceReading(tt.raw)
			if got := reading.Proximity(); got != tt.want {
				t.Errorf("Proximity() = %v, want %v for raw %v", got, tt.want, tt.raw)
			}
		})
	}
}
