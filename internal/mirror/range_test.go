package mirror

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitRange(t *testing.T) {
	got := SplitRange(100, 105, 2)

	want := []BlockRange{
		{From: 100, To: 101},
		{From: 102, To: 103},
		{From: 104, To: 105},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitRangeSingle(t *testing.T) {
	got := SplitRange(5, 5, 10)

	want := []BlockRange{{From: 5, To: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitRangeShortTail(t *testing.T) {
	got := SplitRange(0, 2500, 1000)

	want := []BlockRange{
		{From: 0, To: 999},
		{From: 1000, To: 1999},
		{From: 2000, To: 2500},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitRangeInverted(t *testing.T) {
	if got := SplitRange(10, 9, 1); len(got) != 0 {
		t.Fatalf("expected no ranges for inverted input, got %+v", got)
	}
}

func TestSplitRangeZeroStep(t *testing.T) {
	got := SplitRange(7, 9, 0)

	want := []BlockRange{
		{From: 7, To: 7},
		{From: 8, To: 8},
		{From: 9, To: 9},
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranges mismatch: %+v != %+v", got, want)
	}
}

func TestSplitRangeCoverage(t *testing.T) {
	cases := []struct {
		from, to, step uint64
	}{
		{0, 0, 1},
		{0, 9999, 2000},
		{1, 3000, 1000},
		{17, 91, 7},
		{500, 500, 2000},
	}

	for _, tc := range cases {
		chunks := SplitRange(tc.from, tc.to, tc.step)
		if len(chunks) == 0 {
			t.Fatalf("SplitRange(%d, %d, %d): no chunks", tc.from, tc.to, tc.step)
		}
		if chunks[0].From != tc.from {
			t.Fatalf("first chunk starts at %d, want %d", chunks[0].From, tc.from)
		}
		if chunks[len(chunks)-1].To != tc.to {
			t.Fatalf("last chunk ends at %d, want %d", chunks[len(chunks)-1].To, tc.to)
		}
		for i, chunk := range chunks {
			if chunk.From > chunk.To {
				t.Fatalf("chunk %d inverted: %+v", i, chunk)
			}
			if chunk.Len() > tc.step {
				t.Fatalf("chunk %d longer than step %d: %+v", i, tc.step, chunk)
			}
			if i > 0 && chunk.From != chunks[i-1].To+1 {
				t.Fatalf("chunk %d not contiguous with previous: %+v after %+v", i, chunk, chunks[i-1])
			}
		}
	}
}

func TestNewBlockRange(t *testing.T) {
	got, err := NewBlockRange(10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (BlockRange{From: 10, To: 20}) {
		t.Fatalf("range mismatch: %+v", got)
	}
}

func TestNewBlockRangeInverted(t *testing.T) {
	_, err := NewBlockRange(21, 20)
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
