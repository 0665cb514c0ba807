package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Station represents a physical station on the network.
// The neighbor list is stored per-station as an integer array column;
// the topology service keeps the relation symmetric, so if A lists B
// then B lists A.
type Station struct {
	gorm.Model

	Name      string        `json:"name" gorm:"unique;not null" binding:"required"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	Neighbors pq.Int64Array `json:"neighbors" gorm:"type:integer[]"`
}

// HasNeighbor reports whether id is already in the neighbor set.
func (s *Station) HasNeighbor(id uint) bool {
	for _, n := range s.Neighbors {
		if uint(n) == id {
			return true
		}
	}
	return false
}

// AddNeighbor inserts id into the neighbor set. Adding an existing
// neighbor is a no-op.
func (s *Station) AddNeighbor(id uint) {
	if s.HasNeighbor(id) {
		return
	}
	s.Neighbors = append(s.Neighbors, int64(id))
}

// RemoveNeighbor deletes id from the neighbor set if present.
func (s *Station) RemoveNeighbor(id uint) {
	kept := s.Neighbors[:0]
	for _, n := range s.Neighbors {
		if uint(n) != id {
			kept = append(kept, n)
		}
	}
	s.Neighbors = kept
}
