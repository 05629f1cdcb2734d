// Package wire converts between the api messages shared by both transports
// and the server models consumed by the services.
package wire

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

func User(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

func Task(t *models.Task) *api.Task {
	if t == nil {
		return nil
	}
	return &api.Task{
		ID:          t.ID,
		Owner:       t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		Category:    t.Category,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Tasks never returns nil, so an empty result encodes as [].
func Tasks(ts []*models.Task) []*api.Task {
	out := make([]*api.Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, Task(t))
	}
	return out
}

func Stats(s *models.Stats) *api.StatsResponse {
	resp := &api.StatsResponse{
		StatusCounts:      make(map[string]int64, len(s.StatusCounts)),
		PriorityCounts:    make(map[string]int64, len(s.PriorityCounts)),
		DueDates:          api.DueBuckets(s.DueDates),
		RecentlyCompleted: Tasks(s.RecentlyCompleted),
	}
	for k, v := range s.StatusCounts {
		resp.StatusCounts[string(k)] = v
	}
	for k, v := range s.PriorityCounts {
		resp.PriorityCounts[string(k)] = v
	}
	return resp
}

// Filter builds the task filter of a filter request. Unknown status or
// priority values are ErrInvalidQuery.
func Filter(req *api.FilterTasksRequest) (*models.TaskFilter, error) {
	f := &models.TaskFilter{}
	if req.Status != "" {
		st := models.TaskStatus(req.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidQuery, req.Status)
		}
		f.Status = &st
	}
	if req.Priority != "" {
		p := models.TaskPriority(req.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", common.ErrInvalidQuery, req.Priority)
		}
		f.Priority = &p
	}
	if req.Category != "" {
		c := req.Category
		f.Category = &c
	}
	if req.StartDate != nil || req.EndDate != nil {
		f.Due = &models.DueRange{}
		if req.StartDate != nil {
			f.Due.From = models.Inclusive(*req.StartDate)
		}
		if req.EndDate != nil {
			f.Due.To = models.Inclusive(*req.EndDate)
		}
	}
	return f, nil
}

func CreateInput(req *api.CreateTaskRequest) services.CreateTaskInput {
	return services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		DueDate:     req.DueDate,
		Category:    req.Category,
	}
}

func Patch(req *api.UpdateTaskRequest) models.TaskPatch {
	var p models.TaskPatch
	if req.Title != nil {
		p.Title = models.Some(*req.Title)
	}
	if req.Description != nil {
		p.Description = models.Some(*req.Description)
	}
	if req.Priority != nil {
		p.Priority = models.Some(models.TaskPriority(*req.Priority))
	}
	if req.Status != nil {
		p.Status = models.Some(models.TaskStatus(*req.Status))
	}
	switch {
	case req.ClearDueDate:
		p.DueDate = models.Some[*time.Time](nil)
	case req.DueDate != nil:
		p.DueDate = models.Some(req.DueDate)
	}
	if req.Category != nil {
		p.Category = models.Some(*req.Category)
	}
	return p
}

// ParseDate reads a query-string date in any of api.DateLayouts. An empty
// string is no date.
func ParseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := api.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidQuery, err)
	}
	return &t, nil
}
