// Package maintenance holds the system-wide mode gate. Maintenance ON
// opens the admin-edit window and locks riders out; maintenance OFF
// enables rider service. The two flip directions carry preconditions
// checked at flip time against a consistent snapshot of stations and
// cards.
package maintenance

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"mrt_fare/internal/models"
)

var (
	// ErrTopologyIncomplete blocks enabling rider service while a
	// station has no neighbors: a disconnected station would break
	// path-finding for riders entering there.
	ErrTopologyIncomplete = errors.New("a station has no connections")

	// ErrTripsInProgress blocks entering maintenance while any card is
	// active: an open trip must not span a topology edit window.
	ErrTripsInProgress = errors.New("trips are in progress")
)

// FlagStore persists the single maintenance flag record.
type FlagStore interface {
	MaintenanceEnabled() (bool, error)
	SetMaintenanceEnabled(enabled bool) error
}

// StationStore supplies the station snapshot for the rider-service
// precondition.
type StationStore interface {
	Stations() ([]models.Station, error)
}

// CardStore counts open trips for the maintenance precondition.
type CardStore interface {
	ActiveCards() (int64, error)
}

// Gate guards flips of the maintenance flag. The mutex is shared with
// the topology service so the precondition checks and topology edits
// never interleave.
type Gate struct {
	flags    FlagStore
	stations StationStore
	cards    CardStore
	mu       *sync.Mutex
}

func NewGate(flags FlagStore, stations StationStore, cards CardStore, mu *sync.Mutex) *Gate {
	return &Gate{flags: flags, stations: stations, cards: cards, mu: mu}
}

// RiderServiceEnabled reports whether rider-facing operations may run.
// It reads the stored flag on every call; tap transitions consult it
// at their start, so a flip applies to the next tap attempt.
func (g *Gate) RiderServiceEnabled() (bool, error) {
	enabled, err := g.flags.MaintenanceEnabled()
	if err != nil {
		return false, err
	}
	return !enabled, nil
}

// MaintenanceEnabled returns the raw flag value.
func (g *Gate) MaintenanceEnabled() (bool, error) {
	return g.flags.MaintenanceEnabled()
}

// Set flips the maintenance flag after verifying the precondition for
// the requested direction. Setting the current value again re-runs the
// check but is otherwise a no-op.
func (g *Gate) Set(enabled bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if enabled {
		open, err := g.cards.ActiveCards()
		if err != nil {
			return err
		}
		if open > 0 {
			return ErrTripsInProgress
		}
	} else {
		stations, err := g.stations.Stations()
		if err != nil {
			return err
		}
		for _, s := range stations {
			if len(s.Neighbors) == 0 {
				logrus.WithField("station", s.Name).Warn("rider service blocked by disconnected station")
				return ErrTopologyIncomplete
			}
		}
	}

	if err := g.flags.SetMaintenanceEnabled(enabled); err != nil {
		return err
	}
	logrus.WithField("maintenance", enabled).Info("maintenance flag set")
	return nil
}
