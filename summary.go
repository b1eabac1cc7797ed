package gauntlet

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/fwlab/gauntlet/types"
)

// printSummary renders the per-suite result table and the aggregate counts
// with percentages, followed by a pointer to the detailed log file.
func (c *Campaign) printSummary() {
	t := table.NewWriter()
	t.SetOutputMirror(c.sink.ConsoleWriter())
	t.SetTitle(fmt.Sprintf("Campaign Results (%s)", formatDuration(c.duration)))

	t.AppendHeader(table.Row{
		"Suite", "Duration", "Tests", "Passed", "Failed", "Skipped", "Status",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 40, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})

	for _, result := range c.results {
		t.AppendRow(table.Row{
			result.Name,
			formatDuration(result.Duration),
			result.Tally.Total,
			result.Tally.Passed,
			result.Tally.Failed,
			result.Tally.Skipped,
			getResultString(result.Status()),
		})
	}

	switch c.overallStatus() {
	case types.OutcomePass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.OutcomeSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		formatDuration(c.duration),
		c.tally.Total,
		c.tally.Passed,
		c.tally.Failed,
		c.tally.Skipped,
		getResultString(c.overallStatus()),
	})
	t.Render()

	c.sink.Console("")
	c.sink.Console("Tests complete. [%.1f seconds]", c.duration.Seconds())
	c.sink.Console("%d passed, %d skipped, %d failed", c.tally.Passed, c.tally.Skipped, c.tally.Failed)
	if c.tally.Total > 0 {
		c.sink.Console("")
		c.sink.Console("Total          : %4d", c.tally.Total)
		c.sink.Console("Passed         : %4d", c.tally.Passed)
		c.sink.Console("Skipped        : %4d", c.tally.Skipped)
		c.sink.Console("Passed/Skipped : %4d [%6.2f%%]", c.tally.Total-c.tally.Failed, percent(c.tally.Total-c.tally.Failed, c.tally.Total))
		c.sink.Console("Failed         : %4d [%6.2f%%]", c.tally.Failed, percent(c.tally.Failed, c.tally.Total))
	}
	c.sink.Console("")
	c.sink.Console("More details found in %s", c.sink.Path())
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// getResultString returns a marked string representing the outcome
func getResultString(o types.Outcome) string {
	switch o {
	case types.OutcomePass:
		return "✓ pass"
	case types.OutcomeSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}
