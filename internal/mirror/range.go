package mirror

import "fmt"

// BlockRange represents an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// Len returns the number of blocks covered by the range.
func (r BlockRange) Len() uint64 {
	return r.To - r.From + 1
}

// NewBlockRange builds an inclusive range, rejecting inverted bounds.
func NewBlockRange(from, to uint64) (BlockRange, error) {
	if from > to {
		return BlockRange{}, fmt.Errorf("%w: from block %d > to block %d", ErrInvalidRange, from, to)
	}
	return BlockRange{From: from, To: to}, nil
}

// SplitRange splits an inclusive block range into consecutive chunks of at
// most step blocks. An inverted range yields no chunks, and a zero step is
// treated as one.
func SplitRange(from, to, step uint64) []BlockRange {
	if from > to {
		return nil
	}
	if step == 0 {
		step = 1
	}

	ranges := make([]BlockRange, 0, (to-from)/step+1)
	start := from
	for start <= to {
		end := to
		if remaining := to - start + 1; remaining > step {
			end = start + step - 1
		}
		ranges = append(ranges, BlockRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}

	return ranges
}
