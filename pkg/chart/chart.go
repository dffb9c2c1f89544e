package chart

import (
	"fmt"
	"strings"
	"time"

	"github.com/sherine-k/consultation/pkg/simulation"
)

const (
	chartWidth  = 80
	chartHeight = 20
)

// Generator generates ASCII charts
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width:  chartWidth,
		height: chartHeight,
	}
}

// GenerateUtilizationChart generates an ASCII chart showing busy lawyers and
// waiting clients over time
func (g *Generator) GenerateUtilizationChart(timePoints []simulation.TimePoint, totalLawyers int) string {
	if len(timePoints) == 0 {
		return "No data to display"
	}

	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Lawyer Utilization Over Time\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	plotWidth := g.width - 6
	columns := min(len(timePoints), plotWidth)
	column := func(x int) simulation.TimePoint {
		if columns == 1 {
			return timePoints[0]
		}
		idx := int(float64(x)/float64(columns-1)*float64(len(timePoints)-1) + 0.5)
		return timePoints[min(idx, len(timePoints)-1)]
	}

	maxWaiting := 0
	for _, tp := range timePoints {
		if tp.WaitingClients > maxWaiting {
			maxWaiting = tp.WaitingClients
		}
	}
	// waiting rows are compressed to fit the chart height
	waitingRows := maxWaiting
	if waitingRows > g.height-totalLawyers {
		waitingRows = max(g.height-totalLawyers, 1)
	}
	perRow := 1.0
	if waitingRows > 0 {
		perRow = float64(maxWaiting) / float64(waitingRows)
	}

	for row := waitingRows; row >= 1; row-- {
		sb.WriteString(fmt.Sprintf("%3d |", int(float64(row)*perRow+0.5)))
		for x := 0; x < columns; x++ {
			if float64(column(x).WaitingClients) >= float64(row)*perRow-perRow/2 {
				sb.WriteString("*")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	if waitingRows > 0 {
		sb.WriteString("    ")
		sb.WriteString(strings.Repeat("-", g.width-4))
		sb.WriteString("\n")
	}

	for slot := totalLawyers; slot >= 1; slot-- {
		sb.WriteString(fmt.Sprintf("%3d |", slot))
		for x := 0; x < columns; x++ {
			if column(x).BusyLawyers >= slot {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	// X-axis
	sb.WriteString("    +")
	sb.WriteString(strings.Repeat("-", plotWidth))
	sb.WriteString("\n")

	start := timePoints[0].Time
	total := timePoints[len(timePoints)-1].Time.Sub(start)
	sb.WriteString("    ")
	sb.WriteString(axisLabels(total, plotWidth))
	sb.WriteString("\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString(fmt.Sprintf("  Lawyer slots (1-%d):\n", totalLawyers))
	sb.WriteString("    █ - Busy lawyer\n")
	sb.WriteString("    (space) - Free lawyer\n")
	if waitingRows > 0 {
		sb.WriteString(fmt.Sprintf("  Waiting rows (up to %d clients):\n", maxWaiting))
		sb.WriteString("    * - Client waiting for a lawyer\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// axisLabels places time markers along the x axis, every hour for runs of
// two hours or more and every ten minutes otherwise, widening the step until
// the markers fit
func axisLabels(total time.Duration, width int) string {
	labelLine := make([]rune, width)
	for i := range labelLine {
		labelLine[i] = ' '
	}

	step := time.Hour
	if total < 2*time.Hour {
		step = 10 * time.Minute
	}
	for total/step > time.Duration(width/7) {
		step *= 2
	}

	for mark := time.Duration(0); mark <= total; mark += step {
		position := 0
		if total > 0 {
			position = int(float64(mark) / float64(total) * float64(width))
		}
		marker := FormatDuration(mark)
		if position+len(marker) > width {
			break
		}
		for i, ch := range marker {
			labelLine[position+i] = ch
		}
	}

	return string(labelLine)
}

// GenerateEventSummary generates a summary of events
func (g *Generator) GenerateEventSummary(events []simulation.Event, averageWait float64) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Event Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	eventsByType := make(map[simulation.EventType]int)
	lawyerAssignments := make(map[int]int)
	for _, event := range events {
		eventsByType[event.Type]++
		if event.Type == simulation.EventTypeLawyerBusy {
			lawyerAssignments[event.LawyerID]++
		}
	}

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", len(events)))
	sb.WriteString(fmt.Sprintf("  - Clients Arrived: %d\n", eventsByType[simulation.EventTypeClientArrived]))
	sb.WriteString(fmt.Sprintf("  - Clients Left Line: %d\n", eventsByType[simulation.EventTypeClientDequeued]))
	sb.WriteString(fmt.Sprintf("  - Lawyer Assignments: %d\n", eventsByType[simulation.EventTypeLawyerBusy]))
	sb.WriteString(fmt.Sprintf("  - Lawyer Releases: %d\n", eventsByType[simulation.EventTypeLawyerFree]))
	sb.WriteString(fmt.Sprintf("Average Waiting Time: %.2f seconds (%s)\n",
		averageWait, FormatDuration(time.Duration(averageWait*float64(time.Second)))))

	if len(lawyerAssignments) > 0 {
		sb.WriteString("Assignments per Lawyer:\n")
		for id := 0; id <= simulation.RegularLawyerCount; id++ {
			sb.WriteString(fmt.Sprintf("  - Lawyer %d: %d\n", id, lawyerAssignments[id]))
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateLawyerBoard lists every lawyer with its category and status
func (g *Generator) GenerateLawyerBoard(lawyers []simulation.Lawyer) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Lawyers\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	for _, l := range lawyers {
		sb.WriteString(l.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of events
func (g *Generator) GenerateDetailedTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf(" (showing first %d events)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		event := events[i]
		timestamp := event.Time.Format("15:04:05")

		typeIcon := " "
		switch event.Type {
		case simulation.EventTypeClientArrived:
			typeIcon = "A"
		case simulation.EventTypeClientDequeued:
			typeIcon = "D"
		case simulation.EventTypeLawyerBusy:
			typeIcon = "+"
		case simulation.EventTypeLawyerFree:
			typeIcon = "-"
		}

		sb.WriteString(fmt.Sprintf("[%s] %s [%d/%d] %s\n",
			timestamp,
			typeIcon,
			event.BusyLawyers,
			event.WaitingClients,
			event.Message))
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
