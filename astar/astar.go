package astar

import (
	"container/heap"
	"fmt"

	"github.com/meridianmaps/citymap/core"
	"github.com/meridianmaps/citymap/geo"
)

// ErrNoPath indicates source and destination are not connected under the
// one-way restrictions of the loaded map.
var ErrNoPath = fmt.Errorf("astar: no path between source and destination")

// Path is the result of a successful FindPath call.
type Path struct {
	Intersections []core.IntersectionID
	Segments      []core.SegmentID
	TravelTime    float64 // seconds, including turn penalties
}

// state identifies a node in the search graph: an intersection together
// with the segment used to arrive at it. The arriving segment matters
// because the turn penalty to each outgoing edge depends on it.
type state struct {
	node        core.IntersectionID
	arrivingSeg core.SegmentID
}

// noArrival marks the source state, which has no arriving segment and so
// incurs no turn penalty on its first outgoing edge.
const noArrival core.SegmentID = -1

// FindPath runs A* from source to dest over idx, honoring one-way segments
// and charging opts.TurnPenalty seconds whenever consecutive segments
// belong to different streets. Returns ErrNoPath if dest is unreachable.
//
// Complexity: O((V + E) log V) where V, E count (intersection, arriving
// segment) states rather than plain intersections.
func FindPath(idx *core.MapIndex, source, dest core.IntersectionID, opts ...Option) (*Path, error) {
	if idx == nil {
		return nil, ErrNilMapIndex
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, ok := idx.Intersection(source); !ok {
		return nil, ErrSourceNotFound
	}
	destIn, ok := idx.Intersection(dest)
	if !ok {
		return nil, ErrDestinationNotFound
	}

	fastestSpeed := idx.MaxSpeed()

	heuristic := func(node core.IntersectionID) float64 {
		if fastestSpeed <= 0 {
			return 0
		}
		in, ok := idx.Intersection(node)
		if !ok {
			return 0
		}

		return geo.Distance(in.Position, destIn.Position) / fastestSpeed
	}

	r := &runner{
		idx:       idx,
		cfg:       cfg,
		heuristic: heuristic,
		gScore:    make(map[state]float64),
		cameFrom:  make(map[state]state),
		visited:   make(map[state]bool),
	}

	start := state{node: source, arrivingSeg: noArrival}
	r.gScore[start] = 0
	heap.Init(&r.open)
	heap.Push(&r.open, &openItem{st: start, f: heuristic(source)})

	goal, found, err := r.process(dest)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoPath
	}

	return r.reconstruct(start, goal), nil
}

// runner holds the mutable state of one FindPath execution.
type runner struct {
	idx       *core.MapIndex
	cfg       Options
	heuristic func(core.IntersectionID) float64
	gScore    map[state]float64
	cameFrom  map[state]state
	visited   map[state]bool
	open      openHeap
	expansions int
}

// process pops states in increasing f-score order until dest is settled or
// the open set is exhausted. Returns the settled goal state.
func (r *runner) process(dest core.IntersectionID) (state, bool, error) {
	for r.open.Len() > 0 {
		item := heap.Pop(&r.open).(*openItem)
		cur := item.st

		if r.visited[cur] {
			continue
		}
		r.visited[cur] = true

		if cur.node == dest {
			return cur, true, nil
		}

		r.expansions++
		if r.cfg.MaxExpansions > 0 && r.expansions > r.cfg.MaxExpansions {
			return state{}, false, nil
		}

		if err := r.relax(cur); err != nil {
			return state{}, false, err
		}
	}

	return state{}, false, nil
}

// relax examines every segment usable departing cur.node and attempts to
// improve the known cost of the resulting (neighbor, segment) state.
func (r *runner) relax(cur state) error {
	curG := r.gScore[cur]

	var arrivingStreet core.StreetID
	hasArrivingStreet := false
	if cur.arrivingSeg != noArrival {
		arriving, ok := r.idx.Segment(cur.arrivingSeg)
		if !ok {
			return fmt.Errorf("astar: dangling arriving segment %d", cur.arrivingSeg)
		}
		arrivingStreet = arriving.StreetID
		hasArrivingStreet = true
	}

	for _, segID := range r.idx.SegmentsOfIntersection(cur.node) {
		seg, ok := r.idx.Segment(segID)
		if !ok {
			continue
		}

		neighbor, usable := departureTarget(seg, cur.node)
		if !usable {
			continue
		}

		travelTime, ok := r.idx.SegmentTravelTime(segID)
		if !ok {
			continue
		}

		cost := travelTime
		if hasArrivingStreet && seg.StreetID != arrivingStreet {
			cost += r.cfg.TurnPenalty
		}

		next := state{node: neighbor, arrivingSeg: segID}
		candidate := curG + cost

		if existing, ok := r.gScore[next]; ok && candidate >= existing {
			continue
		}

		r.gScore[next] = candidate
		r.cameFrom[next] = cur
		heap.Push(&r.open, &openItem{st: next, f: candidate + r.heuristic(neighbor)})
	}

	return nil
}

// departureTarget returns the intersection reached by traveling seg away
// from node, and whether that direction of travel is legal.
func departureTarget(seg core.StreetSegment, node core.IntersectionID) (core.IntersectionID, bool) {
	switch {
	case seg.From == node:
		return seg.To, true
	case seg.To == node && !seg.OneWay:
		return seg.From, true
	default:
		return 0, false
	}
}

// reconstruct walks cameFrom from goal back to start and reverses it into
// a forward-ordered Path.
func (r *runner) reconstruct(start, goal state) *Path {
	var intersections []core.IntersectionID
	var segments []core.SegmentID

	cur := goal
	for {
		intersections = append(intersections, cur.node)
		if cur.arrivingSeg != noArrival {
			segments = append(segments, cur.arrivingSeg)
		}
		if cur == start {
			break
		}
		cur = r.cameFrom[cur]
	}

	for i, j := 0, len(intersections)-1; i < j; i, j = i+1, j-1 {
		intersections[i], intersections[j] = intersections[j], intersections[i]
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}

	return &Path{
		Intersections: intersections,
		Segments:      segments,
		TravelTime:    r.gScore[goal],
	}
}

// ComputePathTravelTime sums the travel time of an already-known sequence
// of segments, charging turnPenalty between consecutive segments that
// belong to different streets. It does not validate that consecutive
// segments are actually adjacent; callers pass paths returned by FindPath.
func ComputePathTravelTime(idx *core.MapIndex, segments []core.SegmentID, turnPenalty float64) (float64, error) {
	if idx == nil {
		return 0, ErrNilMapIndex
	}
	if turnPenalty < 0 {
		return 0, ErrBadTurnPenalty
	}

	var total float64
	var prevStreet core.StreetID
	hasPrev := false

	for _, segID := range segments {
		seg, ok := idx.Segment(segID)
		if !ok {
			return 0, fmt.Errorf("astar: unknown segment %d in path", segID)
		}
		tt, ok := idx.SegmentTravelTime(segID)
		if !ok {
			return 0, fmt.Errorf("astar: unknown segment %d in path", segID)
		}

		total += tt
		if hasPrev && seg.StreetID != prevStreet {
			total += turnPenalty
		}
		prevStreet = seg.StreetID
		hasPrev = true
	}

	return total, nil
}

// openItem is one entry of the A* open set, ordered by f-score.
type openItem struct {
	st state
	f  float64
}

// openHeap is a min-heap of *openItem ordered by ascending f-score. Stale
// entries (superseded by a later, cheaper push for the same state) are
// skipped lazily in runner.process via the visited set.
type openHeap []*openItem

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x interface{}) { *h = append(*h, x.(*openItem)) }
func (h *openHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
