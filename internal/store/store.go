// Package store implements the core services' store interfaces on top
// of the gorm database handle. One concrete type satisfies the station,
// card, fare, transaction-log, and flag interfaces consumed by the
// graph, ledger, and maintenance packages.
package store

import (
	"errors"

	"gorm.io/gorm"

	"mrt_fare/internal/graph"
	"mrt_fare/internal/ledger"
	"mrt_fare/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Station loads one station row, mapping a missing row to the graph
// package's sentinel.
func (s *Store) Station(id uint) (*models.Station, error) {
	var station models.Station
	if err := s.db.First(&station, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, graph.ErrUnknownStation
		}
		return nil, err
	}
	return &station, nil
}

// Stations returns every station row.
func (s *Store) Stations() ([]models.Station, error) {
	var stations []models.Station
	if err := s.db.Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

func (s *Store) SaveStation(station *models.Station) error {
	return s.db.Save(station).Error
}

func (s *Store) DeleteStation(station *models.Station) error {
	return s.db.Delete(station).Error
}

// CardByNumber loads a card by its serial, mapping a missing row to the
// ledger package's sentinel.
func (s *Store) CardByNumber(number string) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("card_number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (s *Store) SaveCard(card *models.Card) error {
	return s.db.Save(card).Error
}

// ActiveCards counts cards with an open trip.
func (s *Store) ActiveCards() (int64, error) {
	var count int64
	err := s.db.Model(&models.Card{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

// Price reads one fare component's price from the schedule.
func (s *Store) Price(component string) (int64, error) {
	var fc models.FareComponent
	if err := s.db.Where("type = ?", component).First(&fc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ledger.ErrFareNotConfigured
		}
		return 0, err
	}
	return fc.Price, nil
}

// Append writes one row to the append-only tap log.
func (s *Store) Append(tx *models.TapTransaction) error {
	return s.db.Create(tx).Error
}

// MaintenanceEnabled reads the singleton flag row; an absent row means
// maintenance mode, so a freshly migrated system starts in the
// admin-edit window until the topology is complete.
func (s *Store) MaintenanceEnabled() (bool, error) {
	var flag models.MaintenanceFlag
	if err := s.db.First(&flag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return flag.Enabled, nil
}

// SetMaintenanceEnabled upserts the singleton flag row.
func (s *Store) SetMaintenanceEnabled(enabled bool) error {
	var flag models.MaintenanceFlag
	err := s.db.First(&flag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		flag.Enabled = enabled
		return s.db.Create(&flag).Error
	}
	if err != nil {
		return err
	}
	flag.Enabled = enabled
	return s.db.Save(&flag).Error
}
