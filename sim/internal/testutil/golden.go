// Package testutil provides shared test infrastructure for the simulator:
// golden step traces and floating-point assertions used across sim/ and
// its model packages.
package testutil

import (
	"math"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGoldenLines joins lines (one per snapshot) and compares them with
// testdata/golden/<name>.golden relative to the calling package.
//
// To regenerate golden files, run:
//
//	go test ./sim/... -update
func AssertGoldenLines(t *testing.T, name string, lines []string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(strings.Join(lines, "\n")+"\n"))
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
