package graph

import "errors"

var (
	// ErrInvalidEdge rejects a self-edge, an edge shorter than the
	// 500 m floor, or an edge naming a station that does not exist.
	ErrInvalidEdge = errors.New("invalid edge")

	// ErrUnknownStation means a station id is absent from the graph.
	ErrUnknownStation = errors.New("unknown station")

	// ErrNoPathFound means the two stations sit in different connected
	// components.
	ErrNoPathFound = errors.New("no path found")
)
