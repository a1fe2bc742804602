package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-leveler/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]int32{16384, -16384, 16384, -16384})
	fmt.Printf("peak=%d peak=%.1f dBFS zc=%d\n", s.Peak, s.PeakDBFS, s.ZeroCrossings)

	// Output:
	// peak=16384 peak=-6.0 dBFS zc=3
}

func ExampleChunkStats() {
	for _, c := range timestats.ChunkStats([]int32{100, -100, 50, 50}, 2) {
		fmt.Printf("start=%d mean=%.0f delta=%.0f\n", c.Start, c.Mean, c.AvgDelta)
	}

	// Output:
	// start=0 mean=100 delta=200
	// start=2 mean=50 delta=0
}
