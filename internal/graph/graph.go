// Package graph holds the in-memory station graph, the shortest-path
// search over it, and the topology service that mutates the persisted
// neighbor sets while preserving symmetry and the edge distance floor.
package graph

import (
	"mrt_fare/internal/geo"
	"mrt_fare/internal/models"
)

// node is one station in the in-memory graph. Edges are kept as plain
// station ids rather than pointers so the structure stays acyclic and
// cheap to rebuild from store rows.
type node struct {
	id       uint
	lat, lng float64
	adj      []uint
}

// Graph is an immutable adjacency-map snapshot of the station network,
// built from station rows at query time.
type Graph struct {
	nodes map[uint]*node
}

// Build constructs a graph from station rows. Neighbor entries pointing
// at stations missing from the slice are dropped rather than kept as
// dangling edges.
func Build(stations []models.Station) *Graph {
	g := &Graph{nodes: make(map[uint]*node, len(stations))}
	for _, s := range stations {
		g.nodes[s.ID] = &node{id: s.ID, lat: s.Lat, lng: s.Lng}
	}
	for _, s := range stations {
		n := g.nodes[s.ID]
		for _, raw := range s.Neighbors {
			if _, ok := g.nodes[uint(raw)]; ok {
				n.adj = append(n.adj, uint(raw))
			}
		}
	}
	return g
}

// Has reports whether the station id is part of the graph.
func (g *Graph) Has(id uint) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of stations in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Neighbors returns the ids directly connected to id.
func (g *Graph) Neighbors(id uint) ([]uint, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, ErrUnknownStation
	}
	return n.adj, nil
}

// Distance returns the great-circle distance in meters between two
// stations of the graph. This is both the edge weight used by the
// shortest-path search and the quantity checked against the edge floor.
func (g *Graph) Distance(a, b uint) (float64, error) {
	na, ok := g.nodes[a]
	if !ok {
		return 0, ErrUnknownStation
	}
	nb, ok := g.nodes[b]
	if !ok {
		return 0, ErrUnknownStation
	}
	return geo.Haversine(na.lat, na.lng, nb.lat, nb.lng), nil
}
