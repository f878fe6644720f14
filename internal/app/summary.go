package app

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Status is the outcome of one scene-case.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Result records how one test case went on one scene.
type Result struct {
	Scene    string
	TestCase string
	Renderer string
	Status   Status
	Duration time.Duration
	Err      error
}

// writeSummary renders the results as a table followed by a totals line.
func writeSummary(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Test case", "Renderer", "Status", "Duration"})

	counts := make(map[Status]int)
	for _, r := range results {
		counts[r.Status]++
		duration := "-"
		if r.Status != StatusSkipped {
			duration = r.Duration.Round(time.Millisecond).String()
		}
		table.Append([]string{r.Scene, r.TestCase, r.Renderer, string(r.Status), duration})
	}
	table.Render()

	fmt.Fprintf(w, "%d rendered, %d failed, %d skipped\n",
		counts[StatusRendered], counts[StatusFailed], counts[StatusSkipped])
}
