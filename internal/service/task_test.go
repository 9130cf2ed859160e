package service

import (
	"context"
	"errors"
	"testing"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/services"
)

// seedTask creates a task in the fixture's project assigned to f.member.
func (f *fixture) seedTask(t *testing.T, projectID string) *models.Task {
	t.Helper()
	task := &models.Task{
		Project:    projectID,
		Title:      "Collect samples",
		AssignedTo: &f.member.ID,
		AssignedBy: f.lead.ID,
		Status:     models.TaskPending,
		Priority:   "medium",
	}
	if err := f.store.CreateTask(context.Background(), task); err != nil {
		t.Fatal(err)
	}
	return task
}

func strPtr(s string) *string { return &s }

func f64Ptr(v float64) *float64 { return &v }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestTaskCreateRoleGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	req := &services.CreateTaskRequest{Project: project.ID, Title: "New task"}

	_, err := f.tasks.Create(ctx, f.member, req)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("member create err = %v, want ErrNotAuthorized", err)
	}

	task, err := f.tasks.Create(ctx, f.lead, req)
	if err != nil {
		t.Fatal(err)
	}
	if task.AssignedBy != f.lead.ID {
		t.Errorf("assignedBy = %s, want creator %s", task.AssignedBy, f.lead.ID)
	}
	if task.Status != models.TaskPending {
		t.Errorf("status = %s, want default pending", task.Status)
	}
}

func TestTaskCreateMissingProject(t *testing.T) {
	f := newFixture(t)

	req := &services.CreateTaskRequest{Project: "no-such-project", Title: "stray"}
	_, err := f.tasks.Create(context.Background(), f.lead, req)
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}

func TestTaskGetAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	for _, p := range []*models.Principal{f.admin, f.lead, f.member} {
		if _, err := f.tasks.Get(ctx, p, task.ID); err != nil {
			t.Errorf("%s denied task read: %v", p.Role, err)
		}
	}

	_, err := f.tasks.Get(ctx, f.other, task.ID)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("outsider err = %v, want ErrNotAuthorized", err)
	}
}

func TestTaskUpdateLeadFullWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	req := &services.UpdateTaskRequest{
		Title:    strPtr("Renamed"),
		Priority: strPtr("high"),
		Status:   statusPtr(models.TaskInProgress),
	}
	updated, err := f.tasks.Update(ctx, f.lead, task.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Renamed" || updated.Priority != "high" || updated.Status != models.TaskInProgress {
		t.Errorf("full update not applied: %+v", updated)
	}
}

func TestTaskUpdateAssigneeLimitedWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	req := &services.UpdateTaskRequest{
		Status:      statusPtr(models.TaskCompleted),
		ActualHours: f64Ptr(7.5),
		Comments:    strPtr("done, results in the shared drive"),
	}
	updated, err := f.tasks.Update(ctx, f.member, task.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.TaskCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
	if updated.ActualHours == nil || *updated.ActualHours != 7.5 {
		t.Errorf("actualHours = %v, want 7.5", updated.ActualHours)
	}
	if updated.Comments != "done, results in the shared drive" {
		t.Errorf("comments = %q", updated.Comments)
	}
}

// A request mixing an allowed field with a restricted one is denied whole;
// the allowed part must not be applied either.
func TestTaskUpdateAssigneeMixedFieldsDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	req := &services.UpdateTaskRequest{
		Status: statusPtr(models.TaskCompleted),
		Title:  strPtr("Sneaky rename"),
	}
	_, err := f.tasks.Update(ctx, f.member, task.ID, req)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}

	stored, _ := f.store.GetTaskByID(ctx, task.ID)
	if stored.Status != models.TaskPending || stored.Title != task.Title {
		t.Errorf("denied update partially applied: %+v", stored)
	}
}

func TestTaskUpdateAssigneeCannotReassign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	req := &services.UpdateTaskRequest{AssignedTo: &f.other.ID}
	_, err := f.tasks.Update(ctx, f.member, task.ID, req)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

// A member of the project who is not the assignee gets no write at all.
func TestTaskUpdateNonAssigneeMemberDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	task := &models.Task{
		Project:    project.ID,
		Title:      "Unassigned work",
		AssignedBy: f.lead.ID,
		Status:     models.TaskPending,
	}
	if err := f.store.CreateTask(ctx, task); err != nil {
		t.Fatal(err)
	}

	req := &services.UpdateTaskRequest{Status: statusPtr(models.TaskCompleted)}
	_, err := f.tasks.Update(ctx, f.member, task.ID, req)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestTaskUpdateAdminFullWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	req := &services.UpdateTaskRequest{Title: strPtr("Admin override")}
	updated, err := f.tasks.Update(ctx, f.admin, task.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Admin override" {
		t.Errorf("title = %q", updated.Title)
	}
}

func TestTaskUpdateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	tests := []struct {
		name string
		req  *services.UpdateTaskRequest
	}{
		{"blank title", &services.UpdateTaskRequest{Title: strPtr("   ")}},
		{"unknown status", &services.UpdateTaskRequest{Status: statusPtr("paused")}},
		{"negative hours", &services.UpdateTaskRequest{ActualHours: f64Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.Update(ctx, f.lead, task.ID, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestTaskDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	task := f.seedTask(t, project.ID)

	err := f.tasks.Delete(ctx, f.member, task.ID)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("assignee delete err = %v, want ErrNotAuthorized", err)
	}

	if err := f.tasks.Delete(ctx, f.lead, task.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.store.GetTaskByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("task still present after delete: %v", err)
	}
}

func TestTaskListScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	f.seedTask(t, project.ID)

	unrelated := &models.Project{Title: "Elsewhere", ResearchLead: "someone-else"}
	if err := f.store.CreateProject(ctx, unrelated); err != nil {
		t.Fatal(err)
	}
	stray := &models.Task{Project: unrelated.ID, Title: "stray", AssignedBy: "someone-else"}
	if err := f.store.CreateTask(ctx, stray); err != nil {
		t.Fatal(err)
	}

	adminTasks, err := f.tasks.List(ctx, f.admin, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(adminTasks) != 2 {
		t.Errorf("admin sees %d tasks, want 2", len(adminTasks))
	}

	leadTasks, err := f.tasks.List(ctx, f.lead, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(leadTasks) != 1 {
		t.Errorf("lead sees %d tasks, want 1", len(leadTasks))
	}

	memberTasks, err := f.tasks.List(ctx, f.member, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(memberTasks) != 1 {
		t.Errorf("member sees %d assigned tasks, want 1", len(memberTasks))
	}

	// Scoped to a project the principal cannot read.
	_, err = f.tasks.List(ctx, f.member, unrelated.ID)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestLimitedOnly(t *testing.T) {
	limited := &services.UpdateTaskRequest{
		Status:      statusPtr(models.TaskCompleted),
		ActualHours: f64Ptr(2),
		Comments:    strPtr("n"),
	}
	if !limited.LimitedOnly() {
		t.Error("progress-only request reported as not limited")
	}

	mixed := &services.UpdateTaskRequest{Status: statusPtr(models.TaskCompleted), Title: strPtr("t")}
	if mixed.LimitedOnly() {
		t.Error("request with title reported as limited")
	}
}
