// Package wheelbook computes per-symbol realized and unrealized
// profit-and-loss from a raw stream of brokerage transactions and position
// snapshots, and detects "wheel" options-trading cycles (cash-secured puts
// and covered calls against an underlying).
//
// The core functionalities include:
//   - Exact arithmetic: all money is an integer count of currency minor
//     units, all quantities are integers scaled by 10^10, and every
//     multiply-then-divide goes through a single deterministic rounding
//     primitive. No floating point touches a balance.
//   - Transaction classification: heterogeneous broker records (explicit
//     fields, free-text type labels, or nested raw payloads) are normalized
//     into a closed taxonomy of semantic kinds.
//   - Cost-basis ledger: per-symbol FIFO queues of long and short lots,
//     matched with exact proration so partial fills accumulate no drift.
//   - Currency conversion: a pluggable rate source with inverse-rate
//     derivation and per-transaction rate overrides.
//   - Reporting: per-symbol totals and per-symbol-per-day cumulative rows,
//     plus a flat list of machine-readable anomaly tags for everything that
//     had to be excluded.
//
// Both engines, ComputeTickerPnl and DetectWheelCycles, are pure functions
// of their inputs: no I/O, no hidden state, byte-identical output on
// identical input. This package serves as the foundational logic for the
// `wbk` command-line tool.
package wheelbook
