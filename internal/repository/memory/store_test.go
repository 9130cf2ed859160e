package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
)

func TestCancelledContextFailsClosed(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetProjectByID(ctx, "any")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}

	if err := store.CreateProject(ctx, &models.Project{Title: "x"}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("create err = %v, want ErrStoreUnavailable", err)
	}
}

func TestAddTeamMemberAtomicity(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	project := &models.Project{Title: "p", ResearchLead: "lead"}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatal(err)
	}

	const n = 32
	var added int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.AddTeamMember(ctx, project.ID, "user-1")
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if added != 1 {
		t.Errorf("%d adds reported success, want 1", added)
	}

	stored, err := store.GetProjectByID(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.TeamMembers) != 1 {
		t.Errorf("team = %v, want exactly one entry", stored.TeamMembers)
	}
}

func TestRemoveTeamMemberMissingUser(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	project := &models.Project{Title: "p", ResearchLead: "lead", TeamMembers: []string{"a"}}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatal(err)
	}

	if err := store.RemoveTeamMember(ctx, project.ID, "not-present"); err != nil {
		t.Fatalf("idempotent removal err = %v", err)
	}
	stored, _ := store.GetProjectByID(ctx, project.ID)
	if len(stored.TeamMembers) != 1 {
		t.Errorf("team = %v, want unchanged", stored.TeamMembers)
	}
}

// Update must not write team membership; only the set operations do.
func TestUpdateProjectPreservesTeam(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	project := &models.Project{Title: "p", ResearchLead: "lead", TeamMembers: []string{"a", "b"}}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatal(err)
	}

	stale := *project
	stale.Title = "renamed"
	stale.TeamMembers = []string{"smuggled"}
	if err := store.UpdateProject(ctx, &stale); err != nil {
		t.Fatal(err)
	}

	stored, _ := store.GetProjectByID(ctx, project.ID)
	if stored.Title != "renamed" {
		t.Errorf("title = %q", stored.Title)
	}
	if len(stored.TeamMembers) != 2 {
		t.Errorf("team = %v, want original membership", stored.TeamMembers)
	}
}

func TestGetProjectReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	project := &models.Project{Title: "p", ResearchLead: "lead", TeamMembers: []string{"a"}}
	if err := store.CreateProject(ctx, project); err != nil {
		t.Fatal(err)
	}

	got, _ := store.GetProjectByID(ctx, project.ID)
	got.TeamMembers[0] = "tampered"

	again, _ := store.GetProjectByID(ctx, project.ID)
	if again.TeamMembers[0] != "a" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestListCommentsPagination(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		c := &models.Comment{Project: "p1", Author: "a", Content: "c"}
		if err := store.CreateComment(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	page, err := store.ListCommentsByProject(ctx, "p1", 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 5 {
		t.Errorf("total = %d, want 5", page.Total)
	}
	if len(page.Comments) != 1 {
		t.Errorf("got %d comments, want 1 on the last partial page", len(page.Comments))
	}

	// Offset past the end yields an empty page, not an error.
	page, err = store.ListCommentsByProject(ctx, "p1", 10, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Comments) != 0 {
		t.Errorf("got %d comments, want 0", len(page.Comments))
	}
}
