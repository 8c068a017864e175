package domain

import (
	"encoding/json"
	"testing"
)

func TestCoerceIndex(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(7), 7, true},
		{"json number", float64(7), 7, true},
		{"json.Number", json.Number("7"), 7, true},
		{"quoted int", "7", 7, true},
		{"quoted float", "7.0", 7, true},
		{"words", "seventh", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := CoerceIndex(tc.in)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("CoerceIndex(%v) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCandidateRecordPosition(t *testing.T) {
	if pos, ok := (CandidateRecord{"position": "3"}).Position(); !ok || pos != 3 {
		t.Fatalf("Position() = %d, %v; want 3, true", pos, ok)
	}
	if _, ok := (CandidateRecord{"title": "no position"}).Position(); ok {
		t.Fatalf("expected missing position reported")
	}
}
