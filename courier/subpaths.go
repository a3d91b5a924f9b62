package courier

import (
	"fmt"

	"github.com/meridianmaps/citymap/astar"
	"github.com/meridianmaps/citymap/core"
)

// resolveSubPaths re-resolves the segment-level path between every
// consecutive pair of stops via astar.FindPath, so a Plan's CourierSubPaths
// always agree with point-to-point routing under the same turn penalty.
// Returns ErrInfeasiblePlan if any consecutive pair is unreachable.
func resolveSubPaths(idx *core.MapIndex, stops []Stop, turnPenalty float64) ([]CourierSubPath, error) {
	subPaths := make([]CourierSubPath, 0, len(stops)-1)

	for i := 0; i < len(stops)-1; i++ {
		from := stops[i].Intersection
		to := stops[i+1].Intersection

		path, err := astar.FindPath(idx, from, to, astar.WithTurnPenalty(turnPenalty))
		if err != nil {
			return nil, fmt.Errorf("%w: leg %d->%d: %v", ErrInfeasiblePlan, from, to, err)
		}

		subPaths = append(subPaths, CourierSubPath{
			From:       from,
			To:         to,
			Segments:   path.Segments,
			TravelTime: path.TravelTime,
		})
	}

	return subPaths, nil
}
