package wheelbook

import "testing"

func TestClassify(t *testing.T) {
	call := &OptionContract{Underlying: "AAPL", Right: RightCall, Currency: "USD"}
	put := &OptionContract{Underlying: "AAPL", Right: RightPut, Currency: "USD"}

	testCases := []struct {
		name   string
		label  string
		option *OptionContract
		want   Kind
	}{
		{name: "plain buy", label: "BUY", want: KindStockBuy},
		{name: "stock purchase text", label: "Stock Purchase", want: KindStockBuy},
		{name: "plain sell", label: "SELL", want: KindStockSell},
		{name: "stock buy not sell-to-open", label: "STOCK BUY", want: KindStockBuy},
		{name: "sell-to-open token", label: "STO", option: call, want: KindOptionSell},
		{name: "buy-to-open token", label: "BTO", option: put, want: KindOptionBuy},
		{name: "sell with contract", label: "SELL", option: call, want: KindOptionSell},
		{name: "sell call text without contract", label: "Sell to Open Call", want: KindOptionSell},
		{name: "buy put text without contract", label: "Buy Put", want: KindOptionBuy},
		{name: "dividend", label: "Ordinary Dividend", want: KindDividend},
		{name: "div token", label: "DIV", want: KindDividend},
		{name: "fee", label: "ADR Fee", want: KindFee},
		{name: "commission", label: "Commission Adjustment", want: KindFee},
		{name: "put assignment is a stock buy", label: "Option Assignment", option: put, want: KindStockBuy},
		{name: "call exercise is a stock sell", label: "Exercised", option: call, want: KindStockSell},
		{name: "called away text", label: "Called Away", want: KindStockSell},
		{name: "assignment without right", label: "Assigned", want: KindUnknown},
		{name: "noise", label: "Journal Entry", want: KindUnknown},
		{name: "empty", label: "", want: KindUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.label, tc.option); got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.label, got, tc.want)
			}
		})
	}
}

func TestClassifyWheel(t *testing.T) {
	call := &OptionContract{Underlying: "AAPL", Right: RightCall}
	put := &OptionContract{Underlying: "AAPL", Right: RightPut}

	testCases := []struct {
		name   string
		label  string
		option *OptionContract
		want   WheelKind
		wantOK bool
	}{
		{name: "sold put", label: "Sell to Open", option: put, want: WheelSoldPut, wantOK: true},
		{name: "sold put text", label: "Sold Put", want: WheelSoldPut, wantOK: true},
		{name: "sold call", label: "STO", option: call, want: WheelSoldCall, wantOK: true},
		{name: "bought put", label: "Buy Put", want: WheelBoughtPut, wantOK: true},
		{name: "bought call is not a wheel leg", label: "Buy Call", wantOK: false},
		{name: "assigned put", label: "Assignment", option: put, want: WheelAssignedPut, wantOK: true},
		{name: "called away", label: "Called Away", want: WheelCalledAway, wantOK: true},
		{name: "stock buy", label: "BUY", want: WheelStockBuy, wantOK: true},
		{name: "stock sell", label: "SELL", want: WheelStockSell, wantOK: true},
		{name: "dividend", label: "Dividend", want: WheelDividend, wantOK: true},
		{name: "fee", label: "Fee", want: WheelFee, wantOK: true},
		{name: "option sale without right", label: "Sell to Open Option", wantOK: false},
		{name: "assignment without right", label: "Assigned", wantOK: false},
		{name: "noise", label: "Transfer In", wantOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ClassifyWheel(tc.label, tc.option)
			if ok != tc.wantOK {
				t.Fatalf("ClassifyWheel(%q) ok = %v, want %v", tc.label, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("ClassifyWheel(%q) = %v, want %v", tc.label, got, tc.want)
			}
		})
	}
}
