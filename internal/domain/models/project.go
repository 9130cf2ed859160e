package models

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// ProjectStatus is the project lifecycle status.
// Transitions are not enforced today; any lead/admin write may set any value.
type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "planning"
	StatusActive    ProjectStatus = "active"
	StatusOnHold    ProjectStatus = "on_hold"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
)

// Valid reports whether the status is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Goal is a single project goal. Goals have no identity of their own;
// they live and die with the project.
type Goal struct {
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// GoalList accepts the three wire shapes clients send for goals:
// a list of goal objects, a list of strings, or a single multiline string.
// Entries with blank descriptions are dropped.
type GoalList []Goal

// UnmarshalJSON implements json.Unmarshaler.
func (g *GoalList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*g = nil
		return nil
	}

	// Single multiline string: one goal per non-blank line.
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = goalsFromLines(s)
		return nil
	}

	// List of goal objects.
	var goals []Goal
	if err := json.Unmarshal(data, &goals); err == nil {
		out := make(GoalList, 0, len(goals))
		for _, goal := range goals {
			goal.Description = strings.TrimSpace(goal.Description)
			if goal.Description == "" {
				continue
			}
			out = append(out, goal)
		}
		*g = out
		return nil
	}

	// List of strings.
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	out := make(GoalList, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Goal{Description: line})
	}
	*g = out
	return nil
}

func goalsFromLines(s string) GoalList {
	var out GoalList
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Goal{Description: line})
	}
	return out
}

// Project is a research project. TeamMembers never contains duplicates and
// ResearchLead is always set. Goals is always a (possibly empty) slice.
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ResearchLead string        `json:"researchLead"`
	TeamMembers  []string      `json:"teamMembers"`
	Goals        []Goal        `json:"goals"`
	Status       ProjectStatus `json:"status"`
	Deadline     *time.Time    `json:"deadline,omitempty"`
	Budget       float64       `json:"budget"`
	Tags         []string      `json:"tags"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Progress is the derived completion percentage: round(100 * completed/total),
// 0 when there are no goals. It is recomputed on every call, never stored.
func (p *Project) Progress() int {
	if len(p.Goals) == 0 {
		return 0
	}
	completed := 0
	for _, g := range p.Goals {
		if g.IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(p.Goals)) * 100))
}

// HasMember reports whether userID is in the team member set.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.TeamMembers {
		if m == userID {
			return true
		}
	}
	return false
}

// MarshalJSON includes the derived progress value in responses.
func (p Project) MarshalJSON() ([]byte, error) {
	type alias Project
	return json.Marshal(struct {
		alias
		Progress int `json:"progress"`
	}{
		alias:    alias(p),
		Progress: p.Progress(),
	})
}
