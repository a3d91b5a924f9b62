package ttmatrix

import (
	"container/heap"

	"github.com/meridianmaps/citymap/core"
)

// ttState identifies a node in the single-source search: an intersection
// together with the segment used to arrive at it, mirroring package
// astar's state so turn penalties are charged consistently between the two
// packages.
type ttState struct {
	node        core.IntersectionID
	arrivingSeg core.SegmentID
}

const noArrival core.SegmentID = -1

// travelTimesFromSource runs Dijkstra from source, terminating as soon as
// every intersection in targets has been settled (or the search is
// exhausted). It returns the travel time, in seconds, from source to each
// member of targets that is reachable; unreachable members are absent from
// the result.
//
// Complexity: O((V + E) log V) worst case, but typically far less since the
// search stops once all targets are settled rather than exploring the full
// map.
func travelTimesFromSource(idx *core.MapIndex, source core.IntersectionID, targets map[core.IntersectionID]struct{}, turnPenalty float64) map[core.IntersectionID]float64 {
	dist := make(map[core.IntersectionID]float64, len(targets))
	gScore := make(map[ttState]float64)
	visited := make(map[ttState]bool)

	remaining := len(targets)
	if _, ok := targets[source]; ok {
		dist[source] = 0
		remaining--
	}

	var open ttHeap
	start := ttState{node: source, arrivingSeg: noArrival}
	gScore[start] = 0
	heap.Init(&open)
	heap.Push(&open, &ttItem{st: start, g: 0})

	for open.Len() > 0 && remaining > 0 {
		item := heap.Pop(&open).(*ttItem)
		cur := item.st

		if visited[cur] {
			continue
		}
		visited[cur] = true

		if _, already := dist[cur.node]; !already {
			if _, isTarget := targets[cur.node]; isTarget {
				dist[cur.node] = item.g
				remaining--
				if remaining == 0 {
					break
				}
			}
		}

		relaxTT(idx, cur, item.g, turnPenalty, gScore, &open)
	}

	return dist
}

// relaxTT examines every segment usable departing cur.node and pushes any
// (neighbor, segment) state whose cost improves on what is already known.
func relaxTT(idx *core.MapIndex, cur ttState, curG, turnPenalty float64, gScore map[ttState]float64, open *ttHeap) {
	var arrivingStreet core.StreetID
	hasArrivingStreet := false
	if cur.arrivingSeg != noArrival {
		if arriving, ok := idx.Segment(cur.arrivingSeg); ok {
			arrivingStreet = arriving.StreetID
			hasArrivingStreet = true
		}
	}

	for _, segID := range idx.SegmentsOfIntersection(cur.node) {
		seg, ok := idx.Segment(segID)
		if !ok {
			continue
		}

		neighbor, usable := ttDepartureTarget(seg, cur.node)
		if !usable {
			continue
		}

		travelTime, ok := idx.SegmentTravelTime(segID)
		if !ok {
			continue
		}

		cost := travelTime
		if hasArrivingStreet && seg.StreetID != arrivingStreet {
			cost += turnPenalty
		}

		next := ttState{node: neighbor, arrivingSeg: segID}
		candidate := curG + cost

		if existing, ok := gScore[next]; ok && candidate >= existing {
			continue
		}

		gScore[next] = candidate
		heap.Push(open, &ttItem{st: next, g: candidate})
	}
}

// ttDepartureTarget returns the intersection reached by traveling seg away
// from node, and whether that direction of travel is legal.
func ttDepartureTarget(seg core.StreetSegment, node core.IntersectionID) (core.IntersectionID, bool) {
	switch {
	case seg.From == node:
		return seg.To, true
	case seg.To == node && !seg.OneWay:
		return seg.From, true
	default:
		return 0, false
	}
}

// ttItem is one entry of the Dijkstra open set, ordered by accumulated cost.
type ttItem struct {
	st ttState
	g  float64
}

// ttHeap is a min-heap of *ttItem ordered by ascending g. Stale entries are
// skipped lazily via the visited set in travelTimesFromSource.
type ttHeap []*ttItem

func (h ttHeap) Len() int            { return len(h) }
func (h ttHeap) Less(i, j int) bool  { return h[i].g < h[j].g }
func (h ttHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *ttHeap) Push(x interface{}) { *h = append(*h, x.(*ttItem)) }
func (h *ttHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
