package auth

import (
	"context"
	"fmt"
	"log/slog"

	"labhub/internal/domain"
	"labhub/internal/domain/models"
	"labhub/internal/domain/repositories"

	"github.com/google/uuid"
)

// Resolver turns a presented bearer credential into a Principal.
//
// Two resolution paths exist:
//
//  1. Trusted-claim path: tokens carrying the demo marker are pre-trusted
//     and the principal is built straight from the claims, with no store
//     lookup. This supports ephemeral demo identities. It is an explicit
//     reduced-assurance path: role and department may be stale or invalid
//     relative to the store.
//  2. Verified path: the subject must be a syntactically valid id and must
//     resolve to a stored user record (minus secret fields). A lookup miss
//     fails with ErrUnauthenticated.
//
// The resolver never downgrades a failed resolution to an anonymous principal.
type Resolver struct {
	verifier TokenVerifier
	users    repositories.UserRepository
	logger   *slog.Logger
}

// NewResolver creates an identity resolver.
func NewResolver(verifier TokenVerifier, users repositories.UserRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// Resolve validates the credential and returns the acting principal.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := r.verifier.VerifyToken(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if claims.Demo {
		if !claims.Role.Valid() {
			r.logger.Warn("trusted-claim token carries unknown role",
				"subject", claims.Subject, "role", claims.Role)
			return nil, domain.ErrUnauthenticated
		}
		return &models.Principal{
			ID:         claims.Subject,
			Role:       claims.Role,
			Name:       claims.Name,
			Department: claims.Department,
			Trusted:    true,
		}, nil
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		r.logger.Debug("token subject is not a valid id", "subject", claims.Subject)
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		// Lookup miss and store failure both fail closed; a principal is
		// never fabricated from an unverifiable subject.
		return nil, fmt.Errorf("resolve user %s: %w", claims.Subject, domain.ErrUnauthenticated)
	}

	return &models.Principal{
		ID:         user.ID,
		Role:       user.Role,
		Name:       user.Name,
		Department: user.Department,
	}, nil
}
