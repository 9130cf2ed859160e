package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/repository/memory"

	"github.com/golang-jwt/jwt/v5"
)

// stubVerifier returns canned claims without touching a JWKS endpoint.
type stubVerifier struct {
	claims *models.TokenClaims
	err    error
}

func (v *stubVerifier) VerifyToken(token string) (*models.TokenClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func (v *stubVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveEmptyToken(t *testing.T) {
	r := NewResolver(&stubVerifier{}, memory.NewStore().Users(), testLogger())

	_, err := r.Resolve(context.Background(), "")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveVerifierFailure(t *testing.T) {
	r := NewResolver(&stubVerifier{err: errors.New("bad signature")}, memory.NewStore().Users(), testLogger())

	_, err := r.Resolve(context.Background(), "some-token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveTrustedClaims(t *testing.T) {
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "demo-lead-1"},
		Role:             models.RoleResearchLead,
		Name:             "Demo Lead",
		Department:       "Chemistry",
		Demo:             true,
	}
	r := NewResolver(&stubVerifier{claims: claims}, memory.NewStore().Users(), testLogger())

	p, err := r.Resolve(context.Background(), "token")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "demo-lead-1" || p.Role != models.RoleResearchLead || !p.Trusted {
		t.Errorf("principal = %+v", p)
	}
}

// The trusted-claim path skips the store but never skips role validation.
func TestResolveTrustedClaimsUnknownRole(t *testing.T) {
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "demo-1"},
		Role:             "superuser",
		Demo:             true,
	}
	r := NewResolver(&stubVerifier{claims: claims}, memory.NewStore().Users(), testLogger())

	_, err := r.Resolve(context.Background(), "token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveVerifiedPath(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	user := &models.User{
		ID:         "3f9bb53e-45a5-4c1a-8f2d-0a6d2f9be111",
		Name:       "Stored Lead",
		Email:      "lead@example.org",
		Role:       models.RoleResearchLead,
		Department: "Physics",
	}
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
		// Stale claims are ignored on the verified path.
		Role: models.RoleAdmin,
		Name: "Old Name",
	}
	r := NewResolver(&stubVerifier{claims: claims}, store.Users(), testLogger())

	p, err := r.Resolve(ctx, "token")
	if err != nil {
		t.Fatal(err)
	}
	if p.Role != models.RoleResearchLead || p.Name != "Stored Lead" {
		t.Errorf("principal built from claims, not the store: %+v", p)
	}
	if p.Trusted {
		t.Error("verified principal marked trusted")
	}
}

func TestResolveVerifiedPathRejectsBadSubject(t *testing.T) {
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"},
		Role:             models.RoleTeamMember,
	}
	r := NewResolver(&stubVerifier{claims: claims}, memory.NewStore().Users(), testLogger())

	_, err := r.Resolve(context.Background(), "token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

// A valid token whose subject has no user record must fail closed, never
// fall back to an anonymous principal.
func TestResolveVerifiedPathUserMiss(t *testing.T) {
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "3f9bb53e-45a5-4c1a-8f2d-0a6d2f9be222"},
		Role:             models.RoleTeamMember,
	}
	r := NewResolver(&stubVerifier{claims: claims}, memory.NewStore().Users(), testLogger())

	p, err := r.Resolve(context.Background(), "token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if p != nil {
		t.Errorf("principal = %+v, want nil", p)
	}
}
