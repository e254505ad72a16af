package wheelbook

import "testing"

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    int64 // scaled units
		wantErr bool
	}{
		{name: "integer", in: "10", want: 10 * QuantityUnit},
		{name: "signed positive", in: "+2", want: 2 * QuantityUnit},
		{name: "negative", in: "-3", want: -3 * QuantityUnit},
		{name: "fractional", in: "0.5", want: QuantityUnit / 2},
		{name: "ten fractional digits", in: "0.0000000001", want: 1},
		{name: "eleventh digit rounds half-up", in: "0.00000000015", want: 2},
		{name: "eleventh digit below half truncates", in: "0.00000000014", want: 1},
		{name: "negative magnitude rounds half-up", in: "-0.00000000015", want: -2},
		{name: "whitespace", in: " 1.25 ", want: 125 * QuantityUnit / 100},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "ten", wantErr: true},
		{name: "lone sign", in: "-", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseQuantity(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseQuantity(%q) expected an error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuantity(%q) unexpected error: %v", tc.in, err)
			}
			if got.Units() != tc.want {
				t.Errorf("ParseQuantity(%q) = %d units, want %d", tc.in, got.Units(), tc.want)
			}
		})
	}
}

func TestQuantityString(t *testing.T) {
	testCases := []struct {
		in   Quantity
		want string
	}{
		{in: Q(10), want: "10"},
		{in: MustQuantity("0.5"), want: "0.5"},
		{in: MustQuantity("-1.25"), want: "-1.25"},
		{in: QuantityFromUnits(1), want: "0.0000000001"},
	}
	for _, tc := range testCases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestQuantityArithmetic(t *testing.T) {
	a, b := Q(3), Q(5)
	if got := a.Add(b); !got.Equal(Q(8)) {
		t.Errorf("3+5 = %v", got)
	}
	if got := b.Sub(a); !got.Equal(Q(2)) {
		t.Errorf("5-3 = %v", got)
	}
	if got := a.Min(b); !got.Equal(a) {
		t.Errorf("min(3,5) = %v", got)
	}
	if got := Q(-4).Abs(); !got.Equal(Q(4)) {
		t.Errorf("abs(-4) = %v", got)
	}
	if !Q(-1).IsNegative() || Q(-1).IsPositive() || !Q(0).IsZero() {
		t.Error("sign predicates are wrong")
	}
}
