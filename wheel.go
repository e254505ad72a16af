package wheelbook

import (
	"sort"
	"time"
)

// CycleStatus is the open/closed status of a wheel cycle.
type CycleStatus string

const (
	CycleOpen   CycleStatus = "open"
	CycleClosed CycleStatus = "closed"
)

// WheelLeg is one classified transaction inside a cycle.
type WheelLeg struct {
	Kind          WheelKind
	OccurredAt    time.Time
	TransactionID string
	Raw           map[string]any
}

// MarshalJSON implements the json.Marshaler interface for WheelLeg.
func (l WheelLeg) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", l.Kind)
	w.Append("occurredAt", l.OccurredAt.UTC().Format(time.RFC3339))
	w.Append("transactionId", l.TransactionID)
	w.Optional("raw", l.Raw)
	return w.MarshalJSON()
}

// WheelCycle is one detected wheel: a sold put or call opening leg, any
// number of intermediate legs, and optionally a closing called-away leg.
// ClosedAt is the zero time while the cycle has not been closed.
type WheelCycle struct {
	Symbol   string
	Status   CycleStatus
	OpenedAt time.Time
	ClosedAt time.Time
	Legs     []WheelLeg
}

// MarshalJSON implements the json.Marshaler interface for WheelCycle.
func (c WheelCycle) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", c.Symbol)
	w.Append("status", c.Status)
	w.Append("openedAt", c.OpenedAt.UTC().Format(time.RFC3339))
	if !c.ClosedAt.IsZero() {
		w.Append("closedAt", c.ClosedAt.UTC().Format(time.RFC3339))
	}
	w.Append("legs", c.Legs)
	return w.MarshalJSON()
}

func (c *WheelCycle) lastLegTime() time.Time {
	if len(c.Legs) == 0 {
		return c.OpenedAt
	}
	return c.Legs[len(c.Legs)-1].OccurredAt
}

func (c *WheelCycle) hasSoldPut() bool {
	for _, leg := range c.Legs {
		if leg.Kind == WheelSoldPut {
			return true
		}
	}
	return false
}

// DetectWheelCycles partitions one symbol's transaction history into wheel
// cycles. It is a greedy online pass, not a global optimum partition: a
// given history has exactly one deterministic decomposition.
//
// The caller supplies the transactions of a single symbol; they are
// stable-sorted by (executedAt, id) before the pass so that identical
// inputs always produce identical output. Unclassifiable transactions
// neither open, append to, nor close a cycle.
func DetectWheelCycles(symbol string, txs []BrokerTransaction) []WheelCycle {
	sorted := make([]BrokerTransaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ExecutedAt.Equal(sorted[j].ExecutedAt) {
			return sorted[i].ExecutedAt.Before(sorted[j].ExecutedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	cycles := make([]WheelCycle, 0)
	var current *WheelCycle // nil while no cycle is in progress

	for i := range sorted {
		tx := &sorted[i]
		kind, ok := ClassifyWheel(tx.Type, tx.Option)
		if !ok {
			continue
		}
		leg := WheelLeg{
			Kind:          kind,
			OccurredAt:    tx.ExecutedAt,
			TransactionID: tx.ID,
			Raw:           tx.Raw,
		}

		if current == nil {
			// Only a sold put or sold call opens a cycle; anything else
			// between cycles is noise.
			if kind == WheelSoldPut || kind == WheelSoldCall {
				current = &WheelCycle{
					Symbol:   symbol,
					Status:   CycleOpen,
					OpenedAt: leg.OccurredAt,
					Legs:     []WheelLeg{leg},
				}
			}
			continue
		}

		switch kind {
		case WheelSoldPut:
			if current.hasSoldPut() {
				// A second sold put signals a rolled or independent cycle.
				// The current one is force-closed at its last leg's time.
				// Status intentionally stays "open" here: that is what the
				// upstream system emits for force-closed cycles, and
				// consumers depend on it.
				current.ClosedAt = current.lastLegTime()
				cycles = append(cycles, *current)
				current = &WheelCycle{
					Symbol:   symbol,
					Status:   CycleOpen,
					OpenedAt: leg.OccurredAt,
					Legs:     []WheelLeg{leg},
				}
				continue
			}
			current.Legs = append(current.Legs, leg)

		case WheelCalledAway:
			current.Legs = append(current.Legs, leg)
			current.Status = CycleClosed
			current.ClosedAt = leg.OccurredAt
			cycles = append(cycles, *current)
			current = nil

		default:
			current.Legs = append(current.Legs, leg)
		}
	}

	if current != nil {
		// End of stream with a cycle still in progress: emitted as-is,
		// status open and no close timestamp.
		cycles = append(cycles, *current)
	}
	return cycles
}
