package wheelbook

import "testing"

func TestMulDivRound(t *testing.T) {
	testCases := []struct {
		name            string
		value, mul, div int64
		want            int64
	}{
		{name: "exact", value: 1000, mul: 5, div: 10, want: 500},
		{name: "midpoint rounds away from zero", value: 5, mul: 1, div: 2, want: 3},
		{name: "negative midpoint rounds away from zero", value: -5, mul: 1, div: 2, want: -3},
		{name: "below midpoint rounds down", value: 4, mul: 1, div: 3, want: 1},
		{name: "above midpoint rounds up", value: 5, mul: 1, div: 3, want: 2},
		{name: "sign preserved", value: -600, mul: 5, div: 10, want: -300},
		{name: "negative divisor", value: 600, mul: 5, div: -10, want: -300},
		{name: "huge intermediate product", value: 1_000_000_000_000, mul: QuantityUnit, div: QuantityUnit, want: 1_000_000_000_000},
		{name: "rate inversion", value: RateScale, mul: RateScale, div: 800_000_000, want: 1_250_000_000},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MulDivRound(tc.value, tc.mul, tc.div); got != tc.want {
				t.Errorf("MulDivRound(%d, %d, %d) = %d, want %d", tc.value, tc.mul, tc.div, got, tc.want)
			}
		})
	}
}

func TestMulDivRoundZeroDivisorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on zero divisor")
		}
	}()
	MulDivRound(1, 1, 0)
}
