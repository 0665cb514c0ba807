package maintenance

import (
	"errors"
	"sync"
	"testing"

	"mrt_fare/internal/models"
)

type memFlag struct{ enabled bool }

func (f *memFlag) MaintenanceEnabled() (bool, error)  { return f.enabled, nil }
func (f *memFlag) SetMaintenanceEnabled(e bool) error { f.enabled = e; return nil }

type stubStations []models.Station

func (s stubStations) Stations() ([]models.Station, error) { return s, nil }

type stubCards int64

func (c stubCards) ActiveCards() (int64, error) { return int64(c), nil }

func connected(name string, neighbors ...int64) models.Station {
	return models.Station{Name: name, Neighbors: neighbors}
}

func newGate(flag *memFlag, stations stubStations, active stubCards) *Gate {
	var mu sync.Mutex
	return NewGate(flag, stations, active, &mu)
}

func TestRiderServiceEnabledTracksFlag(t *testing.T) {
	flag := &memFlag{enabled: true}
	g := newGate(flag, nil, 0)

	open, err := g.RiderServiceEnabled()
	if err != nil || open {
		t.Errorf("rider service open under maintenance: open=%v err=%v", open, err)
	}

	// The flag is read on every call, never cached.
	flag.enabled = false
	open, err = g.RiderServiceEnabled()
	if err != nil || !open {
		t.Errorf("rider service closed after flip: open=%v err=%v", open, err)
	}
}

func TestEnableRiderServiceRequiresCompleteTopology(t *testing.T) {
	flag := &memFlag{enabled: true}
	stations := stubStations{
		connected("North", 2),
		connected("Central"), // no neighbors
	}
	g := newGate(flag, stations, 0)

	err := g.Set(false)
	if !errors.Is(err, ErrTopologyIncomplete) {
		t.Fatalf("err = %v, want ErrTopologyIncomplete", err)
	}
	if !flag.enabled {
		t.Error("failed flip must not change the flag")
	}
}

func TestEnableRiderService(t *testing.T) {
	flag := &memFlag{enabled: true}
	stations := stubStations{connected("North", 2), connected("Central", 1)}
	g := newGate(flag, stations, 0)

	if err := g.Set(false); err != nil {
		t.Fatalf("Set(false): %v", err)
	}
	if flag.enabled {
		t.Error("flag not flipped")
	}
}

func TestEnterMaintenanceBlockedByOpenTrips(t *testing.T) {
	flag := &memFlag{enabled: false}
	g := newGate(flag, nil, 3)

	err := g.Set(true)
	if !errors.Is(err, ErrTripsInProgress) {
		t.Fatalf("err = %v, want ErrTripsInProgress", err)
	}
	if flag.enabled {
		t.Error("failed flip must not change the flag")
	}
}

func TestEnterMaintenance(t *testing.T) {
	flag := &memFlag{enabled: false}
	g := newGate(flag, nil, 0)

	if err := g.Set(true); err != nil {
		t.Fatalf("Set(true): %v", err)
	}
	if !flag.enabled {
		t.Error("flag not flipped")
	}
}

func TestEmptyNetworkCanEnableRiderService(t *testing.T) {
	// No stations at all: nothing is disconnected, so the flip holds.
	flag := &memFlag{enabled: true}
	g := newGate(flag, stubStations{}, 0)
	if err := g.Set(false); err != nil {
		t.Errorf("Set(false) on empty network: %v", err)
	}
}
