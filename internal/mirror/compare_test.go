package mirror

import (
	"context"
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name         string
		source       uint64
		destination  uint64
		allowedDrift uint64
		wantDrift    uint64
		wantVerdict  Verdict
		wantSound    bool
	}{
		{"perfect parity", 12, 12, 0, 0, VerdictSound, true},
		{"within tolerance", 100, 97, 5, 3, VerdictWithinTolerance, true},
		{"destination lagging", 100, 80, 5, 20, VerdictLagging, false},
		{"destination overshooting", 80, 100, 5, 20, VerdictOvershooting, false},
		{"parity with allowance", 40, 40, 10, 0, VerdictSound, true},
	}

	for _, tc := range cases {
		got := Classify(tc.source, tc.destination, tc.allowedDrift)
		if got.Drift != tc.wantDrift {
			t.Fatalf("%s: drift %d != %d", tc.name, got.Drift, tc.wantDrift)
		}
		if got.Verdict != tc.wantVerdict {
			t.Fatalf("%s: verdict %s != %s", tc.name, got.Verdict, tc.wantVerdict)
		}
		if got.Sound() != tc.wantSound {
			t.Fatalf("%s: sound %v != %v", tc.name, got.Sound(), tc.wantSound)
		}
	}
}

func TestCompareSound(t *testing.T) {
	src := Side{
		Label: "source",
		Source: &fakeLogSource{counts: map[BlockRange]int{
			{From: 1, To: 1000}:    3,
			{From: 1001, To: 2000}: 4,
			{From: 2001, To: 3000}: 5,
		}},
		Query: testQuery(1, 3000, 1000),
	}
	dst := Side{
		Label:  "destination",
		Source: &fakeLogSource{counts: map[BlockRange]int{{From: 1, To: 3000}: 12}},
		Query:  testQuery(1, 3000, 5000),
	}

	got, err := Compare(context.Background(), src, dst, 0, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Comparison{SourceCount: 12, DestinationCount: 12, Drift: 0, AllowedDrift: 0, Verdict: VerdictSound}
	if got != want {
		t.Fatalf("comparison mismatch: %+v != %+v", got, want)
	}
}

func TestCompareWithinTolerance(t *testing.T) {
	src := Side{
		Label:  "source",
		Source: &fakeLogSource{counts: map[BlockRange]int{{From: 0, To: 999}: 100}},
		Query:  testQuery(0, 999, 1000),
	}
	dst := Side{
		Label:  "destination",
		Source: &fakeLogSource{counts: map[BlockRange]int{{From: 0, To: 999}: 97}},
		Query:  testQuery(0, 999, 1000),
	}

	got, err := Compare(context.Background(), src, dst, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Drift != 3 || got.Verdict != VerdictWithinTolerance || !got.Sound() {
		t.Fatalf("unexpected comparison: %+v", got)
	}
}

func TestCompareLagging(t *testing.T) {
	src := Side{
		Label:  "source",
		Source: &fakeLogSource{counts: map[BlockRange]int{{From: 0, To: 999}: 100}},
		Query:  testQuery(0, 999, 1000),
	}
	dst := Side{
		Label:  "destination",
		Source: &fakeLogSource{counts: map[BlockRange]int{{From: 0, To: 999}: 80}},
		Query:  testQuery(0, 999, 1000),
	}

	got, err := Compare(context.Background(), src, dst, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Drift != 20 || got.Verdict != VerdictLagging || got.Sound() {
		t.Fatalf("unexpected comparison: %+v", got)
	}
}

func TestCompareSourceFailureSkipsDestination(t *testing.T) {
	failing := BlockRange{From: 0, To: 999}
	destination := &fakeLogSource{}

	src := Side{
		Label:  "source",
		Source: &fakeLogSource{failOn: &failing},
		Query:  testQuery(0, 999, 1000),
	}
	dst := Side{
		Label:  "destination",
		Source: destination,
		Query:  testQuery(0, 999, 1000),
	}

	_, err := Compare(context.Background(), src, dst, 0, nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if len(destination.calls) != 0 {
		t.Fatalf("destination should not be queried after source failure, got %+v", destination.calls)
	}
}
