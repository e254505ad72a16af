package wheelbook

import "strings"

// Kind is the closed taxonomy of transaction kinds the P&L engine routes on.
type Kind string

const (
	KindUnknown    Kind = "unknown"
	KindStockBuy   Kind = "stock_buy"
	KindStockSell  Kind = "stock_sell"
	KindOptionBuy  Kind = "option_buy"
	KindOptionSell Kind = "option_sell"
	KindDividend   Kind = "dividend"
	KindFee        Kind = "fee"
)

// WheelKind is the richer taxonomy the wheel cycle detector routes on.
type WheelKind string

const (
	WheelSoldPut     WheelKind = "sold_put"
	WheelSoldCall    WheelKind = "sold_call"
	WheelBoughtPut   WheelKind = "bought_put"
	WheelAssignedPut WheelKind = "assigned_put"
	WheelCalledAway  WheelKind = "called_away"
	WheelStockBuy    WheelKind = "stock_buy"
	WheelStockSell   WheelKind = "stock_sell"
	WheelDividend    WheelKind = "dividend"
	WheelFee         WheelKind = "fee"
)

// Provider vocabularies are free text, so classification is substring and
// token matching on the lower-cased type label. "sto"/"btc" style codes are
// matched as whole tokens only: "stock buy" must not read as sell-to-open.
var (
	sellTokens = []string{"sto", "stc", "sld"}
	buyTokens  = []string{"bto", "btc", "bot"}
)

func hasToken(label, token string) bool {
	for _, t := range strings.FieldsFunc(label, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if t == token {
			return true
		}
	}
	return false
}

func isSellLabel(label string) bool {
	if strings.Contains(label, "sell") || strings.Contains(label, "sold") {
		return true
	}
	for _, t := range sellTokens {
		if hasToken(label, t) {
			return true
		}
	}
	return false
}

func isBuyLabel(label string) bool {
	if strings.Contains(label, "buy") || strings.Contains(label, "bought") || strings.Contains(label, "purchase") {
		return true
	}
	for _, t := range buyTokens {
		if hasToken(label, t) {
			return true
		}
	}
	return false
}

func isOptionLabel(label string, option *OptionContract) bool {
	if option != nil {
		return true
	}
	return strings.Contains(label, "option") || strings.Contains(label, "call") || strings.Contains(label, "put")
}

func isAssignmentLabel(label string) bool {
	return strings.Contains(label, "assign") || strings.Contains(label, "exercis") || strings.Contains(label, "called away")
}

// inferRight determines the option right from the explicit contract field or
// from the type label itself. ok is false when it cannot be determined.
func inferRight(label string, option *OptionContract) (Right, bool) {
	if option != nil && (option.Right == RightPut || option.Right == RightCall) {
		return option.Right, true
	}
	switch {
	case strings.Contains(label, "put"):
		return RightPut, true
	case strings.Contains(label, "call"):
		return RightCall, true
	}
	return "", false
}

// Classify maps a free-text transaction type label, plus an optional option
// contract reference, onto the P&L kind taxonomy. Unrecognizable labels map
// to KindUnknown and are excluded from accumulation.
func Classify(typeLabel string, option *OptionContract) Kind {
	label := strings.ToLower(typeLabel)

	// Dividend and fee keywords short-circuit everything else.
	switch {
	case strings.Contains(label, "dividend"), hasToken(label, "div"):
		return KindDividend
	case strings.Contains(label, "fee"), strings.Contains(label, "commission"), strings.Contains(label, "interest"):
		return KindFee
	}

	// Assignment and exercise move stock, so the P&L engine books them as
	// stock legs: an assigned put delivers shares, a called-away exercise
	// takes them.
	if isAssignmentLabel(label) {
		right, ok := inferRight(label, option)
		if !ok {
			return KindUnknown
		}
		if right == RightPut {
			return KindStockBuy
		}
		return KindStockSell
	}

	sell, buy := isSellLabel(label), isBuyLabel(label)
	opt := isOptionLabel(label, option)
	switch {
	case sell && opt:
		return KindOptionSell
	case buy && opt:
		return KindOptionBuy
	case sell:
		return KindStockSell
	case buy:
		return KindStockBuy
	}
	return KindUnknown
}

// ClassifyWheel maps a type label onto the wheel leg taxonomy. ok is false
// for unclassifiable labels, which the cycle detector ignores entirely.
func ClassifyWheel(typeLabel string, option *OptionContract) (WheelKind, bool) {
	label := strings.ToLower(typeLabel)

	switch {
	case strings.Contains(label, "dividend"), hasToken(label, "div"):
		return WheelDividend, true
	case strings.Contains(label, "fee"), strings.Contains(label, "commission"), strings.Contains(label, "interest"):
		return WheelFee, true
	}

	if isAssignmentLabel(label) {
		right, ok := inferRight(label, option)
		if !ok {
			return "", false
		}
		if right == RightPut {
			return WheelAssignedPut, true
		}
		return WheelCalledAway, true
	}

	sell, buy := isSellLabel(label), isBuyLabel(label)
	if opt := isOptionLabel(label, option); opt {
		right, ok := inferRight(label, option)
		if !ok {
			return "", false
		}
		switch {
		case sell && right == RightPut:
			return WheelSoldPut, true
		case sell && right == RightCall:
			return WheelSoldCall, true
		case buy && right == RightPut:
			return WheelBoughtPut, true
		}
		// A bought call has no role in a wheel cycle.
		return "", false
	}
	switch {
	case sell:
		return WheelStockSell, true
	case buy:
		return WheelStockBuy, true
	}
	return "", false
}
