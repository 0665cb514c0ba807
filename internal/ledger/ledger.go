// Package ledger owns the card tap state machine: tap-in debits the
// minimum fare and activates the card, tap-out computes the trip fare
// from the shortest path and deactivates it. Transitions on the same
// card are serialized through a per-card lock table so a concurrent
// tap pair can never double-activate a card or drive its balance
// negative.
package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"mrt_fare/internal/fare"
	"mrt_fare/internal/graph"
	"mrt_fare/internal/models"
)

var (
	// ErrCardNotFound means no card exists with the given number.
	ErrCardNotFound = errors.New("card not found")

	// ErrAlreadyActive rejects a tap-in on a card that is already
	// inside the system.
	ErrAlreadyActive = errors.New("card already tapped in")

	// ErrNotActive rejects a tap-out on a card with no open trip.
	ErrNotActive = errors.New("card is not tapped in")

	// ErrInsufficientBalance means the card cannot cover the fare; the
	// card is left untouched.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrServiceUnavailable means the maintenance gate has rider
	// operations closed.
	ErrServiceUnavailable = errors.New("rider service unavailable")

	// ErrFareNotConfigured means the fare schedule is missing a
	// component the transition needs.
	ErrFareNotConfigured = errors.New("fare component not configured")

	// ErrCorruptBalance marks a negative balance observed outside a
	// transition. That is a data-integrity bug, never a user error;
	// the card refuses further taps until an operator corrects it.
	ErrCorruptBalance = errors.New("card balance is corrupt")
)

// CardStore reads and writes card rows. CardByNumber must return
// ErrCardNotFound for an unknown serial.
type CardStore interface {
	CardByNumber(number string) (*models.Card, error)
	SaveCard(card *models.Card) error
}

// StationStore supplies the station rows the tap-out path search runs
// over. Station must return graph.ErrUnknownStation for an unknown id.
type StationStore interface {
	Station(id uint) (*models.Station, error)
	Stations() ([]models.Station, error)
}

// FareStore reads a component price from the fare schedule, returning
// ErrFareNotConfigured when the component is absent.
type FareStore interface {
	Price(component string) (int64, error)
}

// TransactionLog is the append-only tap log.
type TransactionLog interface {
	Append(tx *models.TapTransaction) error
}

// Gate is consulted at the start of every transition, never cached, so
// a maintenance flip takes effect for the next tap attempt.
type Gate interface {
	RiderServiceEnabled() (bool, error)
}

// Ledger executes guarded tap transitions against the stores.
type Ledger struct {
	cards    CardStore
	stations StationStore
	fares    FareStore
	log      TransactionLog
	gate     Gate

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(cards CardStore, stations StationStore, fares FareStore, log TransactionLog, gate Gate) *Ledger {
	return &Ledger{
		cards:    cards,
		stations: stations,
		fares:    fares,
		log:      log,
		gate:     gate,
		locks:    make(map[string]*sync.Mutex),
	}
}

// cardLock returns the mutex serializing transitions on one card.
func (l *Ledger) cardLock(number string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[number]
	if !ok {
		m = &sync.Mutex{}
		l.locks[number] = m
	}
	return m
}

// TapOutResult is the outcome of a completed tap-out.
type TapOutResult struct {
	Card     *models.Card
	Fare     int64
	Path     []uint
	Distance float64
}

// TapIn debits the minimum fare, activates the card, and records the
// entry station as the open trip's origin.
func (l *Ledger) TapIn(cardNumber string, stationID uint) (*models.Card, error) {
	lock := l.cardLock(cardNumber)
	lock.Lock()
	defer lock.Unlock()

	if err := l.checkGate(); err != nil {
		return nil, err
	}
	card, err := l.loadCard(cardNumber)
	if err != nil {
		return nil, err
	}
	if card.Active {
		return nil, ErrAlreadyActive
	}
	if _, err := l.stations.Station(stationID); err != nil {
		return nil, err
	}
	minimum, err := l.fares.Price(models.FareMinimum)
	if err != nil {
		return nil, err
	}
	if card.Balance < minimum {
		return nil, ErrInsufficientBalance
	}

	before := card.Balance
	card.Balance -= minimum
	card.Active = true
	card.OriginStationID = &stationID
	if err := l.cards.SaveCard(card); err != nil {
		return nil, err
	}
	if err := l.log.Append(&models.TapTransaction{
		CardNumber:    card.CardNumber,
		Direction:     models.DirectionTapIn,
		StationID:     stationID,
		BalanceBefore: before,
		BalanceAfter:  card.Balance,
		Timestamp:     time.Now(),
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"card":    card.CardNumber,
		"station": stationID,
		"balance": card.Balance,
	}).Info("tap in")
	return card, nil
}

// TapOut computes the shortest path from the open trip's origin to the
// destination, charges the step-function fare, and deactivates the
// card. When the balance cannot cover the fare the transition is
// rejected and the trip stays open; an admin top-up is the recovery
// path. Unconditionally deducting here could store a negative balance,
// which the non-negative invariant forbids.
func (l *Ledger) TapOut(cardNumber string, stationID uint) (*TapOutResult, error) {
	lock := l.cardLock(cardNumber)
	lock.Lock()
	defer lock.Unlock()

	if err := l.checkGate(); err != nil {
		return nil, err
	}
	card, err := l.loadCard(cardNumber)
	if err != nil {
		return nil, err
	}
	if !card.Active || card.OriginStationID == nil {
		return nil, ErrNotActive
	}
	if _, err := l.stations.Station(stationID); err != nil {
		return nil, err
	}

	stations, err := l.stations.Stations()
	if err != nil {
		return nil, err
	}
	path, distance, err := graph.ShortestPath(graph.Build(stations), *card.OriginStationID, stationID)
	if err != nil {
		return nil, err
	}
	minimum, err := l.fares.Price(models.FareMinimum)
	if err != nil {
		return nil, err
	}
	price := fare.Trip(distance, minimum)
	if card.Balance < price {
		return nil, ErrInsufficientBalance
	}

	origin := *card.OriginStationID
	before := card.Balance
	card.Balance -= price
	card.Active = false
	card.OriginStationID = nil
	if err := l.cards.SaveCard(card); err != nil {
		return nil, err
	}
	if err := l.log.Append(&models.TapTransaction{
		CardNumber:      card.CardNumber,
		Direction:       models.DirectionTapOut,
		OriginStationID: &origin,
		StationID:       stationID,
		Fare:            &price,
		BalanceBefore:   before,
		BalanceAfter:    card.Balance,
		Timestamp:       time.Now(),
	}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"card":    card.CardNumber,
		"origin":  origin,
		"dest":    stationID,
		"meters":  distance,
		"fare":    price,
		"balance": card.Balance,
	}).Info("tap out")
	return &TapOutResult{Card: card, Fare: price, Path: path, Distance: distance}, nil
}

func (l *Ledger) checkGate() error {
	open, err := l.gate.RiderServiceEnabled()
	if err != nil {
		return err
	}
	if !open {
		return ErrServiceUnavailable
	}
	return nil
}

func (l *Ledger) loadCard(number string) (*models.Card, error) {
	card, err := l.cards.CardByNumber(number)
	if err != nil {
		return nil, err
	}
	if card.Balance < 0 {
		logrus.WithField("card", card.CardNumber).Error("negative balance on stored card")
		return nil, ErrCorruptBalance
	}
	return card, nil
}
