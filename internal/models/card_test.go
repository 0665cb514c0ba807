package models

import "testing"

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		number string
		want   bool
	}{
		{"637812345678901", true},
		{"637800000000000", true},
		{"137812345678901", false}, // wrong prefix
		{"63781234567890", false},  // too short
		{"6378123456789012", false}, // too long
		{"6378123456789ab", false},  // non-numeric
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidCardNumber(tt.number); got != tt.want {
			t.Errorf("ValidCardNumber(%q) = %v, want %v", tt.number, got, tt.want)
		}
	}
}

func TestStationNeighborSet(t *testing.T) {
	var s Station
	s.AddNeighbor(2)
	s.AddNeighbor(3)
	s.AddNeighbor(2) // duplicate is a no-op
	if len(s.Neighbors) != 2 {
		t.Fatalf("neighbor count = %d, want 2", len(s.Neighbors))
	}
	if !s.HasNeighbor(2) || !s.HasNeighbor(3) {
		t.Error("expected neighbors 2 and 3")
	}
	s.RemoveNeighbor(2)
	if s.HasNeighbor(2) {
		t.Error("neighbor 2 should be removed")
	}
	s.RemoveNeighbor(99) // absent, no-op
	if len(s.Neighbors) != 1 {
		t.Errorf("neighbor count = %d, want 1", len(s.Neighbors))
	}
}
