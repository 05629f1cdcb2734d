package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayouts are the accepted spellings of a date in requests: RFC 3339, a
// timestamp without zone, or a bare calendar date. The last two are UTC.
var DateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate parses s with the first matching layout of DateLayouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// Date decodes a JSON string in any of DateLayouts. It encodes like
// time.Time.
type Date time.Time

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

func (d *Date) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func (r *CreateTaskRequest) UnmarshalJSON(b []byte) error {
	type plain CreateTaskRequest
	aux := struct {
		*plain
		DueDate *Date `json:"dueDate,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.DueDate = aux.DueDate.timePtr()
	return nil
}

func (r *UpdateTaskRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateTaskRequest
	aux := struct {
		*plain
		DueDate *Date `json:"dueDate,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.DueDate = aux.DueDate.timePtr()
	return nil
}

func (r *FilterTasksRequest) UnmarshalJSON(b []byte) error {
	type plain FilterTasksRequest
	aux := struct {
		*plain
		StartDate *Date `json:"startDate,omitempty"`
		EndDate   *Date `json:"endDate,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.StartDate = aux.StartDate.timePtr()
	r.EndDate = aux.EndDate.timePtr()
	return nil
}

func (r *GetStatsRequest) UnmarshalJSON(b []byte) error {
	type plain GetStatsRequest
	aux := struct {
		*plain
		At *Date `json:"at,omitempty"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.At = aux.At.timePtr()
	return nil
}
