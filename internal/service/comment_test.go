package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/services"
)

func (f *fixture) seedComment(t *testing.T, projectID, author string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Project: projectID,
		Author:  author,
		Content: "initial findings attached",
	}
	if err := f.store.CreateComment(context.Background(), comment); err != nil {
		t.Fatal(err)
	}
	return comment
}

func TestCommentCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	req := &services.CreateCommentRequest{Content: "  looks promising  "}
	comment, err := f.comments.Create(ctx, f.member, project.ID, req)
	if err != nil {
		t.Fatal(err)
	}
	if comment.Content != "looks promising" {
		t.Errorf("content = %q, want trimmed", comment.Content)
	}
	if comment.Author != f.member.ID {
		t.Errorf("author = %s, want principal %s", comment.Author, f.member.ID)
	}
	if comment.Attachments == nil {
		t.Error("attachments nil, want empty slice")
	}
}

func TestCommentCreateDeniedForOutsider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	req := &services.CreateCommentRequest{Content: "hello"}
	_, err := f.comments.Create(ctx, f.other, project.ID, req)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   \n  "},
		{"too long", strings.Repeat("x", 2001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.Create(ctx, f.member, project.ID, &services.CreateCommentRequest{Content: tt.content})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCommentDeletePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	// A second member so non-author deletion can be exercised.
	if _, err := f.projects.AddTeamMember(ctx, f.lead, project.ID, f.other.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		actor   *models.Principal
		allowed bool
	}{
		{"author deletes own", f.member, true},
		{"lead deletes any", f.lead, true},
		{"admin deletes any", f.admin, true},
		{"non-author member denied", f.other, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment := f.seedComment(t, project.ID, f.member.ID)
			err := f.comments.Delete(ctx, tt.actor, comment.ID)
			if tt.allowed && err != nil {
				t.Fatalf("err = %v, want nil", err)
			}
			if !tt.allowed {
				if !errors.Is(err, domain.ErrNotAuthorized) {
					t.Fatalf("err = %v, want ErrNotAuthorized", err)
				}
				if _, err := f.store.GetCommentByID(ctx, comment.ID); err != nil {
					t.Error("denied delete removed the comment")
				}
			}
		})
	}
}

func TestCommentListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	for i := 0; i < 7; i++ {
		f.seedComment(t, project.ID, f.member.ID)
	}

	page, err := f.comments.ListByProject(ctx, f.member, project.ID, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 7 {
		t.Errorf("total = %d, want 7", page.Total)
	}
	if page.Pages != 3 {
		t.Errorf("pages = %d, want 3", page.Pages)
	}
	if len(page.Comments) != 3 {
		t.Errorf("page size = %d, want 3", len(page.Comments))
	}
	if page.Page != 2 {
		t.Errorf("page = %d, want 2", page.Page)
	}
}

func TestCommentListDefaultsAndCaps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)
	f.seedComment(t, project.ID, f.member.ID)

	// Zero and negative inputs fall back to defaults.
	page, err := f.comments.ListByProject(ctx, f.member, project.ID, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Page != 1 {
		t.Errorf("page = %d, want 1", page.Page)
	}

	// Oversized limits are capped, not honored.
	if _, err := f.comments.ListByProject(ctx, f.member, project.ID, 1, 10_000); err != nil {
		t.Fatal(err)
	}
}

func TestCommentListDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t)

	_, err := f.comments.ListByProject(ctx, f.other, project.ID, 1, 10)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("err = %v, want ErrNotAuthorized", err)
	}
}

func TestCommentDeleteOrphaned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	comment := f.seedComment(t, "33333333-3333-3333-3333-333333333333", f.member.ID)
	err := f.comments.Delete(ctx, f.admin, comment.ID)
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Fatalf("err = %v, want ErrInvalidReference", err)
	}
}
