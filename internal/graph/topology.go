package graph

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"mrt_fare/internal/geo"
	"mrt_fare/internal/models"
)

// MinEdgeMeters is the distance floor for an edge: two stations closer
// than this may not be connected.
const MinEdgeMeters = 500.0

// Store is the station persistence the topology service mutates.
// Station must return ErrUnknownStation when the id does not exist.
type Store interface {
	Station(id uint) (*models.Station, error)
	Stations() ([]models.Station, error)
	SaveStation(s *models.Station) error
	DeleteStation(s *models.Station) error
}

// Topology applies edge and station mutations against the store while
// preserving the invariants: the neighbor relation stays symmetric and
// every edge spans at least MinEdgeMeters. The mutex is shared with the
// maintenance gate so mode-flip precondition checks observe a settled
// topology.
type Topology struct {
	store Store
	mu    *sync.Mutex
}

func NewTopology(store Store, mu *sync.Mutex) *Topology {
	return &Topology{store: store, mu: mu}
}

// Connect inserts the undirected edge a-b. Connecting an already
// connected pair is a no-op.
func (t *Topology) Connect(a, b uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if a == b {
		return fmt.Errorf("%w: station %d cannot connect to itself", ErrInvalidEdge, a)
	}
	sa, sb, err := t.loadPair(a, b)
	if err != nil {
		return err
	}

	d := geo.Haversine(sa.Lat, sa.Lng, sb.Lat, sb.Lng)
	if d < MinEdgeMeters {
		return fmt.Errorf("%w: %s and %s are %.0f m apart, floor is %.0f m",
			ErrInvalidEdge, sa.Name, sb.Name, d, MinEdgeMeters)
	}

	if sa.HasNeighbor(b) && sb.HasNeighbor(a) {
		return nil
	}
	sa.AddNeighbor(b)
	sb.AddNeighbor(a)
	if err := t.store.SaveStation(sa); err != nil {
		return err
	}
	if err := t.store.SaveStation(sb); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"a": sa.Name, "b": sb.Name, "meters": d}).
		Info("stations connected")
	return nil
}

// Disconnect removes the edge a-b from both neighbor sets. Removing an
// edge that does not exist is not an error.
func (t *Topology) Disconnect(a, b uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sa, sb, err := t.loadPair(a, b)
	if err != nil {
		return err
	}
	sa.RemoveNeighbor(b)
	sb.RemoveNeighbor(a)
	if err := t.store.SaveStation(sa); err != nil {
		return err
	}
	return t.store.SaveStation(sb)
}

// RemoveStation strips the station from every neighbor's set before
// deleting it, so no dangling edge survives.
func (t *Topology) RemoveStation(id uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := t.store.Station(id)
	if err != nil {
		return err
	}
	for _, raw := range target.Neighbors {
		other, err := t.store.Station(uint(raw))
		if err != nil {
			continue // neighbor row already gone
		}
		other.RemoveNeighbor(id)
		if err := t.store.SaveStation(other); err != nil {
			return err
		}
	}
	if err := t.store.DeleteStation(target); err != nil {
		return err
	}
	logrus.WithField("station", target.Name).Info("station removed")
	return nil
}

func (t *Topology) loadPair(a, b uint) (*models.Station, *models.Station, error) {
	sa, err := t.store.Station(a)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: station %d", ErrInvalidEdge, a)
	}
	sb, err := t.store.Station(b)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: station %d", ErrInvalidEdge, b)
	}
	return sa, sb, nil
}
