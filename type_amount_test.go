package wheelbook

import (
	"encoding/json"
	"testing"
)

func TestAmountArithmetic(t *testing.T) {
	a := A(1000, "USD")
	b := A(250, "USD")
	if got := a.Add(b); got.MinorUnits() != 1250 || got.Currency() != "USD" {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got.MinorUnits() != 750 {
		t.Errorf("Sub = %v", got)
	}
	// The "" currency is weak and adopts the other side.
	if got := (Amount{}).Add(a); got.Currency() != "USD" {
		t.Errorf("weak currency Add = %q", got.Currency())
	}
	if got := a.Neg(); got.MinorUnits() != -1000 {
		t.Errorf("Neg = %v", got)
	}
	if got := A(-42, "USD").Abs(); got.MinorUnits() != 42 {
		t.Errorf("Abs = %v", got)
	}
}

func TestAmountCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on currency mismatch")
		}
	}()
	A(1, "USD").Add(A(1, "EUR"))
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("USD"); err != nil {
		t.Errorf("USD: %v", err)
	}
	if err := ValidateCurrency("ZZZ"); err == nil {
		t.Error("ZZZ: expected an error")
	}
	if err := ValidateCurrency("US"); err == nil {
		t.Error("US: expected an error")
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	a := A(100000, "USD")
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"amount":100000,"currency":"USD"}` {
		t.Errorf("Marshal = %s", b)
	}
	var back Amount
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != a {
		t.Errorf("round trip = %v, want %v", back, a)
	}
}
