package controllers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mrt_fare/internal/config"
	"mrt_fare/internal/graph"
	"mrt_fare/internal/ledger"
	"mrt_fare/internal/maintenance"
	"mrt_fare/internal/store"
)

var (
	// topologyMu serializes station-graph edits with maintenance-flag
	// flips so flip preconditions observe a settled topology.
	topologyMu sync.Mutex

	dataStore *store.Store
	gate      *maintenance.Gate
	topology  *graph.Topology
	tapLedger *ledger.Ledger
)

// Init wires the core services over the database handle. Must run
// after config.InitDB.
func Init() {
	dataStore = store.New(config.GetDB())
	gate = maintenance.NewGate(dataStore, dataStore, dataStore, &topologyMu)
	topology = graph.NewTopology(dataStore, &topologyMu)
	tapLedger = ledger.New(dataStore, dataStore, dataStore, dataStore, gate)
}

// respondError maps the core's sentinel errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, graph.ErrInvalidEdge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, graph.ErrUnknownStation),
		errors.Is(err, ledger.ErrCardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrAlreadyActive),
		errors.Is(err, ledger.ErrNotActive),
		errors.Is(err, graph.ErrNoPathFound),
		errors.Is(err, maintenance.ErrTopologyIncomplete),
		errors.Is(err, maintenance.ErrTripsInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logrus.WithError(err).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requireMaintenanceWindow aborts unless the system is in its
// admin-edit window. Topology edits and rider service are mutually
// exclusive modes.
func requireMaintenanceWindow(c *gin.Context) bool {
	enabled, err := gate.MaintenanceEnabled()
	if err != nil {
		respondError(c, err)
		return false
	}
	if !enabled {
		c.JSON(http.StatusConflict, gin.H{"error": "maintenance mode is off; topology edits are locked"})
		return false
	}
	return true
}
