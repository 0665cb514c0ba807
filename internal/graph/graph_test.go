package graph

import (
	"errors"
	"math"
	"testing"

	"mrt_fare/internal/models"
)

// metersPerDegree is the span of one degree of longitude on the
// equator; test stations sit on the equator so edge lengths are exact.
const metersPerDegree = 6371000 * math.Pi / 180

func station(id uint, name string, lngMeters float64, neighbors ...int64) models.Station {
	s := models.Station{Name: name, Lat: 0, Lng: lngMeters / metersPerDegree, Neighbors: neighbors}
	s.ID = id
	return s
}

// line builds stations 1..n spaced 600 m apart in a chain.
func line(n int) []models.Station {
	var stations []models.Station
	for i := 1; i <= n; i++ {
		var adj []int64
		if i > 1 {
			adj = append(adj, int64(i-1))
		}
		if i < n {
			adj = append(adj, int64(i+1))
		}
		stations = append(stations, station(uint(i), string(rune('A'+i-1)), float64(i)*600, adj...))
	}
	return stations
}

func TestBuildAndNeighbors(t *testing.T) {
	g := Build(line(3))
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}

	adj, err := g.Neighbors(2)
	if err != nil {
		t.Fatalf("Neighbors(2): %v", err)
	}
	if len(adj) != 2 {
		t.Errorf("station 2 has %d neighbors, want 2", len(adj))
	}

	if _, err := g.Neighbors(99); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("Neighbors(99) err = %v, want ErrUnknownStation", err)
	}
}

func TestBuildDropsDanglingNeighbors(t *testing.T) {
	s := station(1, "A", 0, 42) // neighbor row 42 does not exist
	g := Build([]models.Station{s})
	adj, err := g.Neighbors(1)
	if err != nil {
		t.Fatalf("Neighbors(1): %v", err)
	}
	if len(adj) != 0 {
		t.Errorf("dangling neighbor kept: %v", adj)
	}
}

func TestDistance(t *testing.T) {
	g := Build(line(2))
	d, err := g.Distance(1, 2)
	if err != nil {
		t.Fatalf("Distance: %v", err)
	}
	if math.Abs(d-600) > 0.01 {
		t.Errorf("Distance(1,2) = %f, want 600", d)
	}
	if _, err := g.Distance(1, 99); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("Distance to unknown station err = %v, want ErrUnknownStation", err)
	}
}

func TestShortestPathSameStation(t *testing.T) {
	g := Build(line(3))
	path, dist, err := ShortestPath(g, 2, 2)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(path) != 1 || path[0] != 2 || dist != 0 {
		t.Errorf("path = %v dist = %f, want [2] 0", path, dist)
	}
}

func TestShortestPathChain(t *testing.T) {
	g := Build(line(4))
	path, dist, err := ShortestPath(g, 1, 4)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	want := []uint{1, 2, 3, 4}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
	if math.Abs(dist-1800) > 0.1 {
		t.Errorf("dist = %f, want 1800", dist)
	}
}

func TestShortestPathPrefersShorterRoute(t *testing.T) {
	// Two routes from 1 to 2: via 3 on the equator (600 + 600 m) or
	// via 4, which sits ~900 m north of the midpoint (~2163 m total).
	detour := station(4, "D", 600, 1, 2)
	detour.Lat = 900 / metersPerDegree
	stations := []models.Station{
		station(1, "A", 0, 3, 4),
		station(2, "B", 1200, 3, 4),
		station(3, "C", 600, 1, 2),
		detour,
	}
	g := Build(stations)

	path, dist, err := ShortestPath(g, 1, 2)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	want := []uint{1, 3, 2}
	if len(path) != len(want) {
		t.Fatalf("path = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
	if math.Abs(dist-1200) > 0.1 {
		t.Errorf("dist = %f, want 1200", dist)
	}
}

func TestShortestPathDisconnected(t *testing.T) {
	stations := []models.Station{
		station(1, "A", 0, 2),
		station(2, "B", 600, 1),
		station(3, "C", 5000), // island
	}
	g := Build(stations)
	if _, _, err := ShortestPath(g, 1, 3); !errors.Is(err, ErrNoPathFound) {
		t.Errorf("err = %v, want ErrNoPathFound", err)
	}
}

func TestShortestPathUnknownStation(t *testing.T) {
	g := Build(line(2))
	if _, _, err := ShortestPath(g, 1, 42); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("err = %v, want ErrUnknownStation", err)
	}
	if _, _, err := ShortestPath(g, 42, 1); !errors.Is(err, ErrUnknownStation) {
		t.Errorf("err = %v, want ErrUnknownStation", err)
	}
}
