package wheelbook

import (
	"testing"
	"time"
)

func wheelTx(id, label string, when time.Time, option *OptionContract) BrokerTransaction {
	return BrokerTransaction{
		ID:         id,
		ExecutedAt: when,
		Type:       label,
		Option:     option,
	}
}

func TestDetectWheelCyclesFullCycle(t *testing.T) {
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}
	t1 := at("2025-01-06", 10)
	t2 := at("2025-01-17", 10)
	t3 := at("2025-02-21", 10)

	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t1", "Sell to Open", t1, put),
		wheelTx("t2", "Assignment", t2, put),
		wheelTx("t3", "Called Away", t3, nil),
	})

	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	c := cycles[0]
	if c.Status != CycleClosed {
		t.Errorf("status = %v, want closed", c.Status)
	}
	if !c.OpenedAt.Equal(t1) || !c.ClosedAt.Equal(t3) {
		t.Errorf("openedAt/closedAt = %v/%v, want %v/%v", c.OpenedAt, c.ClosedAt, t1, t3)
	}
	if len(c.Legs) != 3 {
		t.Fatalf("legs = %d, want 3", len(c.Legs))
	}
	wantKinds := []WheelKind{WheelSoldPut, WheelAssignedPut, WheelCalledAway}
	for i, want := range wantKinds {
		if c.Legs[i].Kind != want {
			t.Errorf("legs[%d].Kind = %v, want %v", i, c.Legs[i].Kind, want)
		}
	}
}

func TestDetectWheelCyclesRepeatSoldPutForceCloses(t *testing.T) {
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}
	t1 := at("2025-01-06", 10)
	t2 := at("2025-01-20", 10)

	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t1", "Sell to Open", t1, put),
		wheelTx("t2", "Sell to Open", t2, put),
	})

	if len(cycles) != 2 {
		t.Fatalf("cycles = %d, want 2", len(cycles))
	}
	first, second := cycles[0], cycles[1]
	if len(first.Legs) != 1 || len(second.Legs) != 1 {
		t.Fatalf("legs = %d/%d, want 1/1", len(first.Legs), len(second.Legs))
	}
	// The force-closed cycle keeps status "open" while still carrying a
	// close timestamp. That mismatch is what the upstream system emits.
	if first.Status != CycleOpen {
		t.Errorf("first.Status = %v, want open", first.Status)
	}
	if !first.ClosedAt.Equal(t1) {
		t.Errorf("first.ClosedAt = %v, want %v", first.ClosedAt, t1)
	}
	if second.Status != CycleOpen || !second.ClosedAt.IsZero() || !second.OpenedAt.Equal(t2) {
		t.Errorf("second = %+v, want an open cycle starting %v", second, t2)
	}
}

func TestDetectWheelCyclesRepeatedSoldCallAppends(t *testing.T) {
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}
	call := &OptionContract{Underlying: "AAPL", Right: RightCall}

	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t1", "Sell to Open", at("2025-01-06", 10), put),
		wheelTx("t2", "Assignment", at("2025-01-17", 10), put),
		wheelTx("t3", "Sell to Open", at("2025-01-20", 10), call),
		wheelTx("t4", "Sell to Open", at("2025-02-20", 10), call),
	})

	// Repeated covered calls extend the cycle; only a repeated sold put
	// forces a split.
	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	if got := cycles[0]; got.Status != CycleOpen || len(got.Legs) != 4 || !got.ClosedAt.IsZero() {
		t.Errorf("cycle = %+v, want one open 4-leg cycle", got)
	}
}

func TestDetectWheelCyclesIntermediateLegs(t *testing.T) {
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}

	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t1", "Sell to Open", at("2025-01-06", 10), put),
		wheelTx("t2", "Dividend", at("2025-01-10", 10), nil),
		wheelTx("t3", "Fee", at("2025-01-11", 10), nil),
		wheelTx("t4", "BUY", at("2025-01-12", 10), nil),
		wheelTx("t5", "Buy Put", at("2025-01-13", 10), nil),
		wheelTx("t6", "Journal Entry", at("2025-01-14", 10), nil), // unclassifiable, ignored
		wheelTx("t7", "Called Away", at("2025-01-15", 10), nil),
	})

	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	c := cycles[0]
	if c.Status != CycleClosed || len(c.Legs) != 6 {
		t.Fatalf("cycle = %+v, want a closed 6-leg cycle", c)
	}
	wantKinds := []WheelKind{WheelSoldPut, WheelDividend, WheelFee, WheelStockBuy, WheelBoughtPut, WheelCalledAway}
	for i, want := range wantKinds {
		if c.Legs[i].Kind != want {
			t.Errorf("legs[%d].Kind = %v, want %v", i, c.Legs[i].Kind, want)
		}
	}
}

func TestDetectWheelCyclesLegsBeforeOpenAreIgnored(t *testing.T) {
	call := &OptionContract{Underlying: "AAPL", Right: RightCall}

	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t1", "BUY", at("2025-01-02", 10), nil),
		wheelTx("t2", "Dividend", at("2025-01-03", 10), nil),
		wheelTx("t3", "Sell to Open", at("2025-01-06", 10), call),
	})

	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	if c := cycles[0]; len(c.Legs) != 1 || c.Legs[0].Kind != WheelSoldCall {
		t.Errorf("cycle = %+v, want a single sold_call leg", c)
	}
}

func TestDetectWheelCyclesUnsortedInput(t *testing.T) {
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}
	t1 := at("2025-01-06", 10)
	t3 := at("2025-02-21", 10)

	// Input arrives out of order; detection sorts before the pass.
	cycles := DetectWheelCycles("AAPL", []BrokerTransaction{
		wheelTx("t3", "Called Away", t3, nil),
		wheelTx("t1", "Sell to Open", t1, put),
	})
	if len(cycles) != 1 || cycles[0].Status != CycleClosed || !cycles[0].ClosedAt.Equal(t3) {
		t.Errorf("cycles = %+v, want one cycle closed at %v", cycles, t3)
	}
}

func TestDetectWheelCyclesEmpty(t *testing.T) {
	if cycles := DetectWheelCycles("AAPL", nil); len(cycles) != 0 {
		t.Errorf("cycles = %v, want none", cycles)
	}
}
