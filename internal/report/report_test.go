package report

import (
	"strings"
	"testing"
	"time"

	"github.com/jonbondani/PMO-MCP/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInsights() domain.SprintInsights {
	return domain.SprintInsights{
		Sprint: domain.Sprint{ID: 42, Name: "Sprint 42"},
		Metrics: domain.SprintMetrics{
			TotalIssues:      3,
			IssuesByStatus:   map[string]int{"Open": 2, "Done": 1},
			IssuesByType:     map[string]int{"Bug": 1, "Story": 2},
			IssuesByAssignee: map[string]int{"Unassigned": 1, "Alice": 2},
			StoryPoints:      domain.StoryPoints{Total: 8, Completed: 3},
			SprintProgress:   37.5,
			SprintDates:      domain.SprintDates{StartDate: "2025-03-01", EndDate: "2025-03-14"},
			Velocity:         3,
		},
	}
}

func TestRender_ContainsSummaryAndMetrics(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)
	html := Render(sampleInsights(), now)

	assert.Contains(t, html, "<h1>Sprint Insights - Updated 2025-03-10</h1>")
	assert.Contains(t, html, "<p>Sprint ID: 42</p>")
	assert.Contains(t, html, "<p>Sprint name: Sprint 42</p>")
	assert.Contains(t, html, "<p>Start date: 2025-03-01</p>")
	assert.Contains(t, html, "<p>End date: 2025-03-14</p>")
	assert.Contains(t, html, "<p>Total issues: 3</p>")
	assert.Contains(t, html, "<p>Total story points: 8</p>")
	assert.Contains(t, html, "<p>Completed story points: 3</p>")
	assert.Contains(t, html, "<p>Velocity: 3</p>")
}

func TestRender_ProgressHasTwoDecimals(t *testing.T) {
	html := Render(sampleInsights(), time.Now())
	assert.Contains(t, html, "<p>Sprint progress: 37.50%</p>")
}

func TestRender_DistributionsSortedByKey(t *testing.T) {
	html := Render(sampleInsights(), time.Now())

	require.Contains(t, html, "<li><strong>Done:</strong> 1</li>")
	require.Contains(t, html, "<li><strong>Open:</strong> 2</li>")
	assert.Less(t, strings.Index(html, "<strong>Done:"), strings.Index(html, "<strong>Open:"))

	require.Contains(t, html, "<li><strong>Alice:</strong> 2</li>")
	require.Contains(t, html, "<li><strong>Unassigned:</strong> 1</li>")
	assert.Less(t, strings.Index(html, "<strong>Alice:"), strings.Index(html, "<strong>Unassigned:"))
}

func TestRender_DeterministicForSameInput(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := sampleInsights()
	require.Equal(t, Render(in, now), Render(in, now))
}
