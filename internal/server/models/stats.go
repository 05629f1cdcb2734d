package models

// DueBuckets counts tasks by due date relative to a reference day.
type DueBuckets struct {
	Overdue  int64 `json:"overdue"`
	Today    int64 `json:"today"`
	ThisWeek int64 `json:"thisWeek"`
	Future   int64 `json:"future"`
}

// Stats is the per-user summary returned by the stats endpoint.
type Stats struct {
	StatusCounts      map[TaskStatus]int64   `json:"statusCounts"`
	PriorityCounts    map[TaskPriority]int64 `json:"priorityCounts"`
	DueDates          DueBuckets             `json:"dueDates"`
	RecentlyCompleted []*Task                `json:"recentlyCompleted"`
}
