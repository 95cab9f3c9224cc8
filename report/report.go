// Package report renders benchmark results as fixed-format comparison
// tables, one for the insert strategies and one for the update strategies.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"sqlitebench/benchmark"
)

// Print writes both comparison tables. Results keep their declared order;
// skipped scenarios are listed as omitted so the tables always show the full
// strategy set.
func Print(w io.Writer, results []benchmark.Result) {
	printGroup(w, "TESTING INSERTS", benchmark.GroupInsert, results)
	fmt.Fprintln(w)
	printGroup(w, "TESTING UPDATES", benchmark.GroupUpdate, results)
}

func printGroup(w io.Writer, title string, group benchmark.Group, results []benchmark.Result) {
	fmt.Fprintln(w, title)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Test", "Time (sec)", "Rows/sec"})

	for _, result := range results {
		if result.Group != group {
			continue
		}
		table.Append(row(result))
	}

	table.Render()
}

func row(result benchmark.Result) []string {
	if result.Skipped {
		return []string{result.Scenario, "omitted", "omitted"}
	}

	// Sub-millisecond runs carry no usable rate.
	rate := "n/a"
	if result.RowsPerSec > 0 {
		rate = fmt.Sprintf("%.2f", result.RowsPerSec)
	}

	return []string{result.Scenario, fmt.Sprintf("%.2f", result.Elapsed.Seconds()), rate}
}
