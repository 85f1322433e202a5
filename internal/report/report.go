/* Copyright (c) 2025 PMO-MCP Authors
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/domain"
)

// Render produces the Confluence storage-format body for a sprint summary.
// Pure: the caller supplies the clock so output is reproducible in tests.
func Render(insights domain.SprintInsights, now time.Time) string {
	m := insights.Metrics
	b := &strings.Builder{}

	fmt.Fprintf(b, "<h1>Sprint Insights - Updated %s</h1>\n", now.Format("2006-01-02"))

	fmt.Fprintf(b, "<h2>Summary</h2>\n")
	fmt.Fprintf(b, "<p>Sprint ID: %d</p>\n", insights.Sprint.ID)
	fmt.Fprintf(b, "<p>Sprint name: %s</p>\n", insights.Sprint.Name)
	fmt.Fprintf(b, "<p>Start date: %s</p>\n", m.SprintDates.StartDate)
	fmt.Fprintf(b, "<p>End date: %s</p>\n", m.SprintDates.EndDate)

	fmt.Fprintf(b, "<h2>Metrics</h2>\n")
	fmt.Fprintf(b, "<p>Total issues: %d</p>\n", m.TotalIssues)
	fmt.Fprintf(b, "<p>Total story points: %g</p>\n", m.StoryPoints.Total)
	fmt.Fprintf(b, "<p>Completed story points: %g</p>\n", m.StoryPoints.Completed)
	fmt.Fprintf(b, "<p>Sprint progress: %.2f%%</p>\n", m.SprintProgress)
	fmt.Fprintf(b, "<p>Velocity: %g</p>\n", m.Velocity)

	writeDistribution(b, "Distribution by status", m.IssuesByStatus)
	writeDistribution(b, "Distribution by type", m.IssuesByType)
	writeDistribution(b, "Distribution by assignee", m.IssuesByAssignee)

	return b.String()
}

func writeDistribution(b *strings.Builder, heading string, counts map[string]int) {
	fmt.Fprintf(b, "<h2>%s</h2>\n<ul>\n", heading)
	keys := make([]string, 0, len(counts))
	for k := range counts { keys = append(keys, k) }
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "<li><strong>%s:</strong> %d</li>\n", k, counts[k])
	}
	fmt.Fprintf(b, "</ul>\n")
}
