package fare

import "testing"

func TestTrip(t *testing.T) {
	const minimum = 10

	tests := []struct {
		name   string
		meters float64
		want   int64
	}{
		{"zero distance still costs the minimum", 0, 10},
		{"inside first increment", 250, 10},
		{"exactly one increment", 500, 10},
		{"just past one increment", 500.0001, 20},
		{"two increments", 1000, 20},
		{"just past two increments", 1000.0001, 30},
		{"partial increments round up", 600, 20},
		{"long trip", 5200, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trip(tt.meters, minimum); got != tt.want {
				t.Errorf("Trip(%v, %d) = %d, want %d", tt.meters, minimum, got, tt.want)
			}
		})
	}
}

func TestTripScalesWithMinimum(t *testing.T) {
	if got := Trip(600, 15); got != 30 {
		t.Errorf("Trip(600, 15) = %d, want 30", got)
	}
}
