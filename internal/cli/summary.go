package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/gasparyanartur/syllacalc/internal/logger"
)

// writeSummary prints the run's counters and fetch timings to w
func writeSummary(w io.Writer) {
	snap := logger.GetSnapshot()

	fmt.Fprintln(w, "Run summary:")

	names := make([]string, 0, len(snap.Counters))
	for name := range snap.Counters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, snap.Counters[name])
	}

	names = names[:0]
	for name := range snap.Timings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := snap.Timings[name]
		fmt.Fprintf(w, "  %s: %d calls, avg %s, min %s, max %s\n",
			name, stats.Count, stats.Average, stats.Min, stats.Max)
	}
}
