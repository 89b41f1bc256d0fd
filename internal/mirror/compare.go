package mirror

import (
	"context"

	"go.uber.org/zap"
)

// Verdict classifies the outcome of a mirror comparison.
type Verdict string

const (
	// VerdictSound means perfect event parity between the two sides.
	VerdictSound Verdict = "sound"

	// VerdictWithinTolerance means the counts differ but the drift stays
	// within the allowance.
	VerdictWithinTolerance Verdict = "sound_within_tolerance"

	// VerdictLagging means the destination is missing events.
	VerdictLagging Verdict = "destination_lagging"

	// VerdictOvershooting means the destination has extra events.
	VerdictOvershooting Verdict = "destination_overshooting"
)

// Side pairs a log source with the query to run against it.
type Side struct {
	Label  string
	Source LogSource
	Query  Query
}

// Comparison holds both totals and the derived drift classification.
type Comparison struct {
	SourceCount      uint64
	DestinationCount uint64
	Drift            uint64
	AllowedDrift     uint64
	Verdict          Verdict
}

// Sound reports whether the drift stays within the allowance.
func (c Comparison) Sound() bool {
	return c.Drift <= c.AllowedDrift
}

// Compare counts the source side fully, then the destination side, and
// classifies the drift between the two totals. The fixed order keeps the
// output reproducible, and a source failure means the destination is
// never queried.
func Compare(ctx context.Context, src, dst Side, allowedDrift uint64, logger *zap.Logger) (Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sourceCount, err := NewCounter(src.Source, src.Label, logger).Count(ctx, src.Query)
	if err != nil {
		return Comparison{}, err
	}

	destinationCount, err := NewCounter(dst.Source, dst.Label, logger).Count(ctx, dst.Query)
	if err != nil {
		return Comparison{}, err
	}

	return Classify(sourceCount, destinationCount, allowedDrift), nil
}

// Classify derives the drift and verdict from two totals. Equal counts
// always yield zero drift, so the four verdicts are exhaustive.
func Classify(sourceCount, destinationCount, allowedDrift uint64) Comparison {
	drift := sourceCount - destinationCount
	if destinationCount > sourceCount {
		drift = destinationCount - sourceCount
	}

	cmp := Comparison{
		SourceCount:      sourceCount,
		DestinationCount: destinationCount,
		Drift:            drift,
		AllowedDrift:     allowedDrift,
	}

	switch {
	case drift <= allowedDrift && sourceCount == destinationCount:
		cmp.Verdict = VerdictSound
	case drift <= allowedDrift:
		cmp.Verdict = VerdictWithinTolerance
	case sourceCount > destinationCount:
		cmp.Verdict = VerdictLagging
	default:
		cmp.Verdict = VerdictOvershooting
	}

	return cmp
}
