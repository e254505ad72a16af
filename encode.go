package wheelbook

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeTransactions reads broker transactions from a JSONL stream, one JSON
// object per line. The opaque "raw" field is kept as-is for the resolution
// probes.
func DecodeTransactions(r io.Reader) ([]BrokerTransaction, error) {
	var txs []BrokerTransaction
	dec := json.NewDecoder(r)
	for line := 1; ; line++ {
		var tx BrokerTransaction
		if err := dec.Decode(&tx); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("invalid transaction at entry %d: %w", line, err)
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction at entry %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// DecodeSnapshots reads position snapshots from a JSONL stream.
func DecodeSnapshots(r io.Reader) ([]PositionSnapshot, error) {
	var snaps []PositionSnapshot
	dec := json.NewDecoder(r)
	for line := 1; ; line++ {
		var snap PositionSnapshot
		if err := dec.Decode(&snap); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("invalid snapshot at entry %d: %w", line, err)
		}
		if err := snap.Validate(); err != nil {
			return nil, fmt.Errorf("invalid snapshot at entry %d: %w", line, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// DecodeRates reads a flat JSON rates object ({"EURUSD": 1.0834, ...}) into
// a static rate source. A malformed pair or rate is a configuration error.
func DecodeRates(r io.Reader) (Rates, error) {
	var pairs map[string]float64
	if err := json.NewDecoder(r).Decode(&pairs); err != nil {
		return nil, fmt.Errorf("invalid rates file: %w", err)
	}
	return NewRates(pairs)
}

// EncodeReport writes a report as a single JSON document with a stable field
// order, so identical computations serialize byte-identically.
func EncodeReport(w io.Writer, report *Report) error {
	b, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}

// EncodeCycles writes detected wheel cycles as JSONL, one cycle per line.
func EncodeCycles(w io.Writer, cycles []WheelCycle) error {
	for _, cycle := range cycles {
		b, err := json.Marshal(cycle)
		if err != nil {
			return fmt.Errorf("could not encode cycle: %w", err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("could not write cycle: %w", err)
		}
	}
	return nil
}
