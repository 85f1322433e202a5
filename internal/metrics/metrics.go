package metrics

import "github.com/jonbondani/PMO-MCP/internal/domain"

// Statuses that count an issue's estimate toward the completed sum.
var completedStatuses = map[string]struct{}{
	"Done":     {},
	"Closed":   {},
	"Resolved": {},
}

// Compute aggregates sprint issues into a metrics summary. It is pure and
// order-independent: reordering the input changes nothing but the walk.
func Compute(issues []domain.Issue, sprint domain.Sprint) domain.SprintMetrics {
	m := domain.SprintMetrics{
		TotalIssues:      len(issues),
		IssuesByStatus:   map[string]int{},
		IssuesByType:     map[string]int{},
		IssuesByAssignee: map[string]int{},
		SprintDates: domain.SprintDates{
			StartDate: sprint.StartDate,
			EndDate:   sprint.EndDate,
		},
	}

	for _, issue := range issues {
		m.IssuesByStatus[issue.Status]++
		m.IssuesByType[issue.Type]++

		assignee := issue.Assignee
		if assignee == "" { assignee = "Unassigned" }
		m.IssuesByAssignee[assignee]++

		m.StoryPoints.Total += issue.StoryPoints
		if _, done := completedStatuses[issue.Status]; done {
			m.StoryPoints.Completed += issue.StoryPoints
		}
	}

	if m.StoryPoints.Total > 0 {
		m.SprintProgress = m.StoryPoints.Completed / m.StoryPoints.Total * 100
	}
	m.Velocity = m.StoryPoints.Completed

	return m
}
