package ports

import (
	"context"

	"github.com/ziplink/ziplink/pkg/core/domain"
)

// LinkRepository defines storage operations for links. Any store with a
// put-if-absent primitive and an atomic counter increment satisfies it.
type LinkRepository interface {
	// Create persists a new link. Returns domain.ErrAliasTaken if the
	// short code already exists.
	Create(ctx context.Context, link *domain.Link) error

	// GetByShortCode retrieves a link by its exact short code.
	// Returns (nil, nil) when no such link exists.
	GetByShortCode(ctx context.Context, code string) (*domain.Link, error)

	// IncrementClicks atomically increments the click counter in the
	// store, never via read-modify-write.
	IncrementClicks(ctx context.Context, code string) error

	// ListByUser returns all links owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Link, error)

	// Delete removes a link. Deleting an absent code is not an error.
	Delete(ctx context.Context, code string) error

	// Dump returns every stored link, for migration tooling.
	Dump(ctx context.Context) ([]domain.Link, error)
}

// LinkService defines the business logic operations.
type LinkService interface {
	// Shorten allocates or validates a short code and persists the link.
	// customAlias, password, userID, and expiresAt may be empty.
	Shorten(ctx context.Context, longURL, customAlias, password, userID, expiresAt string) (*domain.Link, error)

	// Resolve looks up a short code and decides the redirect outcome.
	Resolve(ctx context.Context, shortCode string) (*domain.Resolution, error)

	// VerifyPassword checks a protected link's password and returns the
	// destination URL on success.
	VerifyPassword(ctx context.Context, shortCode, password string) (string, error)

	// ListByUser returns the caller's links, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Link, error)

	// Delete removes a link. Idempotent.
	Delete(ctx context.Context, shortCode string) error
}
