package mirror

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// LogSource queries matching logs for one contract and topic0 over an
// inclusive block range.
type LogSource interface {
	FilterLogs(ctx context.Context, fromBlock, toBlock uint64, address common.Address, topic0 common.Hash) ([]types.Log, error)
}

// Query describes one side's log count request.
type Query struct {
	Address common.Address
	Topic0  common.Hash
	Range   BlockRange
	Step    uint64
}

// Counter sums matching log counts over a chunked block range.
type Counter struct {
	source LogSource
	label  string
	logger *zap.Logger
}

// NewCounter builds a Counter for one side of the comparison.
func NewCounter(source LogSource, label string, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Counter{source: source, label: label, logger: logger}
}

// Count issues one log query per chunk, in ascending order, and returns
// the summed log count. The first failing chunk aborts the whole count;
// there is no retry and no partial total.
func (c *Counter) Count(ctx context.Context, q Query) (uint64, error) {
	var total uint64
	for _, chunk := range SplitRange(q.Range.From, q.Range.To, q.Step) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		logs, err := c.source.FilterLogs(ctx, chunk.From, chunk.To, q.Address, q.Topic0)
		if err != nil {
			return 0, fmt.Errorf("%w: %s blocks %d-%d: %v", ErrTransport, c.label, chunk.From, chunk.To, err)
		}

		total += uint64(len(logs))
		c.logger.Debug("chunk counted",
			zap.String("side", c.label),
			zap.Uint64("from", chunk.From),
			zap.Uint64("to", chunk.To),
			zap.Int("logs", len(logs)),
		)
	}

	c.logger.Info("range counted",
		zap.String("side", c.label),
		zap.Uint64("from", q.Range.From),
		zap.Uint64("to", q.Range.To),
		zap.Uint64("count", total),
	)

	return total, nil
}
