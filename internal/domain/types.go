package domain

// Sprint is the tracker's view of a sprint, echoed to callers unchanged.
type Sprint struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Goal      string `json:"goal,omitempty"`
}

// Issue is a snapshot of a single sprint issue with the fields the
// aggregator needs. StoryPoints is zero when the estimate is absent,
// Assignee empty when unassigned.
type Issue struct {
	Key            string  `json:"key"`
	Summary        string  `json:"summary"`
	Status         string  `json:"status"`
	Type           string  `json:"type"`
	Priority       string  `json:"priority,omitempty"`
	Assignee       string  `json:"assignee,omitempty"`
	StoryPoints    float64 `json:"story_points"`
	Created        string  `json:"created,omitempty"`
	Updated        string  `json:"updated,omitempty"`
	ResolutionDate string  `json:"resolution_date,omitempty"`
}

type StoryPoints struct {
	Total     float64 `json:"total"`
	Completed float64 `json:"completed"`
}

type SprintDates struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SprintMetrics is recomputed on every request and never stored.
type SprintMetrics struct {
	TotalIssues      int            `json:"total_issues"`
	IssuesByStatus   map[string]int `json:"issues_by_status"`
	IssuesByType     map[string]int `json:"issues_by_type"`
	IssuesByAssignee map[string]int `json:"issues_by_assignee"`
	StoryPoints      StoryPoints    `json:"story_points"`
	SprintProgress   float64        `json:"sprint_progress"`
	SprintDates      SprintDates    `json:"sprint_dates"`
	Velocity         float64        `json:"velocity"`
}

// SprintContext is the combined payload returned by /context.
type SprintContext struct {
	Sprint  Sprint        `json:"sprint"`
	Issues  []Issue       `json:"issues"`
	Metrics SprintMetrics `json:"metrics"`
}

// SprintInsights is what the updater renders into the wiki page. Callers of
// /update-confluence supply it; the report job builds it from a fresh fetch.
type SprintInsights struct {
	Sprint  Sprint        `json:"sprint"`
	Metrics SprintMetrics `json:"metrics"`
}

// Page is the wiki's current view of a page.
type Page struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version int    `json:"version"`
}

// PageUpdate is the write half of the read-modify-write cycle.
type PageUpdate struct {
	Title   string
	Version int
	Body    string
}

// UpdateResult reports the outcome of a page update. It is a value, not an
// error: updater failures are part of the response, never raised.
type UpdateResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	PageID     string `json:"page_id"`
	NewVersion int    `json:"new_version,omitempty"`
}
