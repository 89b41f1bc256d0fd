// Package report renders mirror comparison results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"mirrorscope/internal/mirror"
)

// SideSummary describes one chain's query bounds and result.
type SideSummary struct {
	Label     string `json:"label"`
	Endpoint  string `json:"rpc"`
	ChainID   uint64 `json:"chain_id,omitempty"`
	FromBlock uint64 `json:"from_block"`
	ToBlock   uint64 `json:"to_block"`
	Count     uint64 `json:"count"`
}

// Summary is the machine-readable comparison report.
type Summary struct {
	Contract       string         `json:"contract"`
	EventSignature string         `json:"event_signature"`
	Topic0         string         `json:"topic0"`
	Source         SideSummary    `json:"source"`
	Destination    SideSummary    `json:"destination"`
	Drift          uint64         `json:"drift"`
	AllowDrift     uint64         `json:"allow_drift"`
	Verdict        mirror.Verdict `json:"verdict"`
	OK             bool           `json:"ok"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

// VerdictLine returns the human report sentence for a verdict.
func VerdictLine(v mirror.Verdict) string {
	switch v {
	case mirror.VerdictSound:
		return "MIRROR SOUND: perfect event parity."
	case mirror.VerdictWithinTolerance:
		return "MIRROR SOUND: counts differ within drift tolerance."
	case mirror.VerdictLagging:
		return "MIRROR LAGGING: destination chain is missing events."
	case mirror.VerdictOvershooting:
		return "MIRROR OVERSHOOTING: extra events on destination chain."
	default:
		return fmt.Sprintf("MIRROR VERDICT: %s", v)
	}
}

// Render writes the human-readable multi-line report.
func Render(w io.Writer, s Summary) error {
	lines := []string{
		fmt.Sprintf("contract:           %s", s.Contract),
		fmt.Sprintf("event:              %s", s.EventSignature),
		fmt.Sprintf("topic0:             %s", s.Topic0),
		sideLine(s.Source),
		sideLine(s.Destination),
		fmt.Sprintf("source events:      %d", s.Source.Count),
		fmt.Sprintf("destination events: %d", s.Destination.Count),
		fmt.Sprintf("drift:              %d (allowed <= %d)", s.Drift, s.AllowDrift),
		VerdictLine(s.Verdict),
		fmt.Sprintf("completed in %.2fs", s.ElapsedSeconds),
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func sideLine(side SideSummary) string {
	chain := ""
	if side.ChainID != 0 {
		chain = fmt.Sprintf(" (chain %d)", side.ChainID)
	}
	return fmt.Sprintf("%-19s %s%s blocks %d-%d", side.Label+":", side.Endpoint, chain, side.FromBlock, side.ToBlock)
}

// WriteJSON writes the indented machine-readable report.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
