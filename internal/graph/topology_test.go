package graph

import (
	"errors"
	"sync"
	"testing"

	"mrt_fare/internal/models"
)

// memStore is an in-memory Store for topology tests.
type memStore struct {
	stations map[uint]models.Station
}

func newMemStore(stations ...models.Station) *memStore {
	m := &memStore{stations: make(map[uint]models.Station)}
	for _, s := range stations {
		m.stations[s.ID] = s
	}
	return m
}

func (m *memStore) Station(id uint) (*models.Station, error) {
	s, ok := m.stations[id]
	if !ok {
		return nil, ErrUnknownStation
	}
	cp := s
	cp.Neighbors = append([]int64(nil), s.Neighbors...)
	return &cp, nil
}

func (m *memStore) Stations() ([]models.Station, error) {
	var out []models.Station
	for _, s := range m.stations {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStore) SaveStation(s *models.Station) error {
	m.stations[s.ID] = *s
	return nil
}

func (m *memStore) DeleteStation(s *models.Station) error {
	delete(m.stations, s.ID)
	return nil
}

func newTopology(store Store) *Topology {
	var mu sync.Mutex
	return NewTopology(store, &mu)
}

func TestConnectSymmetric(t *testing.T) {
	store := newMemStore(station(1, "A", 0), station(2, "B", 600))
	topo := newTopology(store)

	if err := topo.Connect(1, 2); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	a, _ := store.Station(1)
	b, _ := store.Station(2)
	if !a.HasNeighbor(2) || !b.HasNeighbor(1) {
		t.Error("edge not symmetric after Connect")
	}

	// Idempotent: connecting again changes nothing.
	if err := topo.Connect(1, 2); err != nil {
		t.Fatalf("repeat Connect: %v", err)
	}
	a, _ = store.Station(1)
	if len(a.Neighbors) != 1 {
		t.Errorf("repeat Connect duplicated neighbor: %v", a.Neighbors)
	}
}

func TestConnectRejectsSelfEdge(t *testing.T) {
	store := newMemStore(station(1, "A", 0))
	if err := newTopology(store).Connect(1, 1); !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("self edge err = %v, want ErrInvalidEdge", err)
	}
}

func TestConnectRejectsShortEdge(t *testing.T) {
	store := newMemStore(station(1, "A", 0), station(2, "B", 400))
	err := newTopology(store).Connect(1, 2)
	if !errors.Is(err, ErrInvalidEdge) {
		t.Fatalf("400 m edge err = %v, want ErrInvalidEdge", err)
	}
	a, _ := store.Station(1)
	if len(a.Neighbors) != 0 {
		t.Error("rejected edge must not mutate neighbor sets")
	}
}

func TestConnectExactlyAtFloor(t *testing.T) {
	store := newMemStore(station(1, "A", 0), station(2, "B", 500))
	if err := newTopology(store).Connect(1, 2); err != nil {
		t.Errorf("500 m edge should be allowed: %v", err)
	}
}

func TestConnectUnknownStation(t *testing.T) {
	store := newMemStore(station(1, "A", 0))
	if err := newTopology(store).Connect(1, 99); !errors.Is(err, ErrInvalidEdge) {
		t.Errorf("unknown station err = %v, want ErrInvalidEdge", err)
	}
}

func TestDisconnect(t *testing.T) {
	store := newMemStore(station(1, "A", 0, 2), station(2, "B", 600, 1))
	topo := newTopology(store)

	if err := topo.Disconnect(1, 2); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	a, _ := store.Station(1)
	b, _ := store.Station(2)
	if a.HasNeighbor(2) || b.HasNeighbor(1) {
		t.Error("edge survived Disconnect")
	}

	// Removing a non-existent edge is not an error.
	if err := topo.Disconnect(1, 2); err != nil {
		t.Errorf("repeat Disconnect: %v", err)
	}
}

func TestRemoveStationCascades(t *testing.T) {
	store := newMemStore(
		station(1, "A", 0, 2),
		station(2, "B", 600, 1, 3),
		station(3, "C", 1200, 2),
	)
	topo := newTopology(store)

	if err := topo.RemoveStation(2); err != nil {
		t.Fatalf("RemoveStation: %v", err)
	}
	if _, err := store.Station(2); !errors.Is(err, ErrUnknownStation) {
		t.Error("station 2 still present")
	}
	a, _ := store.Station(1)
	c, _ := store.Station(3)
	if a.HasNeighbor(2) || c.HasNeighbor(2) {
		t.Error("removed station still referenced by neighbors")
	}
}
