package ttmatrix

import (
	"fmt"
	"math"
	"sync"

	"github.com/meridianmaps/citymap/core"
)

// Matrix is a dense travel-time table between a fixed set of key
// intersections. Entries are in seconds; unreachable pairs hold +Inf.
type Matrix struct {
	keys  []core.IntersectionID
	index map[core.IntersectionID]int
	times [][]float64
}

// Build computes the travel-time matrix between every pair of keys over
// idx. One goroutine runs a multi-target Dijkstra search per key, writing
// exclusively to that key's row of the matrix; no locking is required
// since rows never overlap between goroutines.
//
// Complexity: O(K * (V + E) log V) total work, O((V + E) log V) wall clock
// with K goroutines scheduled concurrently.
func Build(idx *core.MapIndex, keys []core.IntersectionID, opts ...Option) (*Matrix, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	index := make(map[core.IntersectionID]int, len(keys))
	targetSet := make(map[core.IntersectionID]struct{}, len(keys))
	for i, k := range keys {
		if _, ok := idx.Intersection(k); !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownKey, k)
		}
		index[k] = i
		targetSet[k] = struct{}{}
	}

	rows := make([][]float64, len(keys))

	var wg sync.WaitGroup
	wg.Add(len(keys))
	for i, src := range keys {
		go func(i int, src core.IntersectionID) {
			defer wg.Done()

			dist := travelTimesFromSource(idx, src, targetSet, cfg.TurnPenalty)
			row := make([]float64, len(keys))
			for j, k := range keys {
				if d, ok := dist[k]; ok {
					row[j] = d
				} else {
					row[j] = math.Inf(1)
				}
			}
			rows[i] = row
		}(i, src)
	}
	wg.Wait()

	return &Matrix{
		keys:  append([]core.IntersectionID(nil), keys...),
		index: index,
		times: rows,
	}, nil
}

// Keys returns the key intersections in the order their rows/columns
// appear in the matrix.
func (m *Matrix) Keys() []core.IntersectionID { return m.keys }

// Size returns the number of keys (the matrix is Size() x Size()).
func (m *Matrix) Size() int { return len(m.keys) }

// TravelTime returns the travel time, in seconds, from from to to. ok is
// false if either intersection is not a key of this matrix.
func (m *Matrix) TravelTime(from, to core.IntersectionID) (float64, bool) {
	i, ok := m.index[from]
	if !ok {
		return 0, false
	}
	j, ok := m.index[to]
	if !ok {
		return 0, false
	}

	return m.times[i][j], true
}
