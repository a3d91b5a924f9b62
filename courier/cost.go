package courier

import (
	"fmt"
	"math"

	"github.com/meridianmaps/citymap/ttmatrix"
)

// CalculatePathCost sums the travel time, in seconds, between consecutive
// stops using mat. Returns ErrInfeasiblePlan if any consecutive pair is
// unreachable (an infinite matrix entry).
//
// Complexity: O(len(stops)).
func CalculatePathCost(mat *ttmatrix.Matrix, stops []Stop) (float64, error) {
	var total float64

	for i := 0; i < len(stops)-1; i++ {
		t, ok := mat.TravelTime(stops[i].Intersection, stops[i+1].Intersection)
		if !ok {
			return 0, fmt.Errorf("%w: leg %d->%d", ErrUnknownIntersection, stops[i].Intersection, stops[i+1].Intersection)
		}
		if math.IsInf(t, 1) {
			return 0, ErrInfeasiblePlan
		}
		total += t
	}

	return total, nil
}

// LegalPathCheck verifies that stops is a well-formed route over deliveries:
// it starts and ends with a single StopDepot stop, every delivery's pickup
// precedes its dropoff, and every delivery is visited exactly once in each
// role.
//
// Complexity: O(len(stops)).
func LegalPathCheck(stops []Stop, deliveries []Delivery) error {
	if len(stops) < 2 || stops[0].Kind != StopDepot {
		return fmt.Errorf("%w: route must start at a depot", ErrMalformedStop)
	}
	if stops[len(stops)-1].Kind != StopDepot {
		return fmt.Errorf("%w: route must end at a depot", ErrMalformedStop)
	}

	pickedUp := make([]bool, len(deliveries))
	droppedOff := make([]bool, len(deliveries))

	for _, s := range stops[1 : len(stops)-1] {
		if s.DeliveryIndex < 0 || s.DeliveryIndex >= len(deliveries) {
			return fmt.Errorf("%w: delivery index %d out of range", ErrMalformedStop, s.DeliveryIndex)
		}

		switch s.Kind {
		case StopPickup:
			if pickedUp[s.DeliveryIndex] {
				return fmt.Errorf("%w: pickup %d repeated", ErrDuplicateStop, s.DeliveryIndex)
			}
			pickedUp[s.DeliveryIndex] = true
		case StopDropoff:
			if !pickedUp[s.DeliveryIndex] {
				return fmt.Errorf("%w: delivery %d", ErrDropoffBeforePickup, s.DeliveryIndex)
			}
			if droppedOff[s.DeliveryIndex] {
				return fmt.Errorf("%w: dropoff %d repeated", ErrDuplicateStop, s.DeliveryIndex)
			}
			droppedOff[s.DeliveryIndex] = true
		default:
			return fmt.Errorf("%w: unexpected depot stop mid-route", ErrMalformedStop)
		}
	}

	for i := range deliveries {
		if !pickedUp[i] || !droppedOff[i] {
			return fmt.Errorf("%w: delivery %d", ErrIncompletePlan, i)
		}
	}

	return nil
}
