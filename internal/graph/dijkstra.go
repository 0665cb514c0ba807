package graph

import "container/heap"

// queueItem is one pending vertex in the Dijkstra frontier.
type queueItem struct {
	id   uint
	dist float64
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(queueItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from start over the graph's edges weighted
// by great-circle distance and returns the station ids along the
// shortest path to end together with its total length in meters.
// start == end yields a single-station path of distance zero. Ties
// between equally short paths are broken by relaxation order; the fare
// only depends on the distance, so the tie-break is not significant.
func ShortestPath(g *Graph, start, end uint) ([]uint, float64, error) {
	if !g.Has(start) || !g.Has(end) {
		return nil, 0, ErrUnknownStation
	}
	if start == end {
		return []uint{start}, 0, nil
	}

	dist := map[uint]float64{start: 0}
	parent := make(map[uint]uint)
	done := make(map[uint]bool)

	pq := &priorityQueue{{id: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem)
		if done[cur.id] {
			continue
		}
		done[cur.id] = true
		if cur.id == end {
			break
		}

		adj, _ := g.Neighbors(cur.id)
		for _, next := range adj {
			if done[next] {
				continue
			}
			w, err := g.Distance(cur.id, next)
			if err != nil {
				return nil, 0, err
			}
			alt := dist[cur.id] + w
			if best, seen := dist[next]; !seen || alt < best {
				dist[next] = alt
				parent[next] = cur.id
				heap.Push(pq, queueItem{id: next, dist: alt})
			}
		}
	}

	if !done[end] {
		return nil, 0, ErrNoPathFound
	}

	// Walk the parent map back from end to start.
	path := []uint{end}
	for cur := end; cur != start; {
		p := parent[cur]
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[end], nil
}
