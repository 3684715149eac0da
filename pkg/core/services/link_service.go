package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/ports"
)

const (
	// randomCodeLength is the starting length for generated codes.
	randomCodeLength = 6
	// maxAttemptsPerLength bounds the retry loop before the generator
	// falls back to a longer code. Collisions over a 62^6 space are
	// already negligible, so the bound exists only to rule out livelock.
	maxAttemptsPerLength = 8
	// maxCodeLength caps the fallback growth.
	maxCodeLength = 10
)

type LinkService struct {
	repo   ports.LinkRepository
	hasher *PasswordHasher
	clock  domain.Clock
}

func NewLinkService(repo ports.LinkRepository, hasher *PasswordHasher, clock domain.Clock) *LinkService {
	return &LinkService{repo: repo, hasher: hasher, clock: clock}
}

// Shorten validates or allocates a short code and persists the link.
// Creating is not idempotent: a second call with the same custom alias
// fails with domain.ErrAliasTaken, and calls without an alias always
// produce fresh codes.
func (s *LinkService) Shorten(ctx context.Context, longURL, customAlias, password, userID, expiresAt string) (*domain.Link, error) {
	if longURL == "" {
		return nil, domain.ErrLongURLRequired
	}

	var expiry *time.Time
	if expiresAt != "" {
		t, err := parseExpiry(expiresAt)
		if err != nil {
			return nil, domain.ErrBadExpiry
		}
		expiry = &t
	}

	var passwordHash string
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		passwordHash = hash
	}

	link := &domain.Link{
		LongURL:      longURL,
		UserID:       userID,
		Clicks:       0,
		CreatedAt:    s.clock.Now().UTC(),
		PasswordHash: passwordHash,
		IsProtected:  passwordHash != "",
		ExpiresAt:    expiry,
	}

	if customAlias != "" {
		code := strings.ToLower(customAlias)
		if err := domain.ValidateCustomAlias(code); err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByShortCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("checking alias availability: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrAliasTaken
		}
		link.ShortCode = code
		if err := s.repo.Create(ctx, link); err != nil {
			if errors.Is(err, domain.ErrAliasTaken) {
				return nil, domain.ErrAliasTaken
			}
			return nil, fmt.Errorf("saving link: %w", err)
		}
		return link, nil
	}

	return s.createWithRandomCode(ctx, link)
}

// createWithRandomCode allocates a fresh code, growing the length when a
// code space is unlucky enough to keep colliding. The unique constraint
// on the store is the final arbiter, so two concurrent creations can
// never both win the same code.
func (s *LinkService) createWithRandomCode(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	for length := randomCodeLength; length <= maxCodeLength; length++ {
		for attempt := 0; attempt < maxAttemptsPerLength; attempt++ {
			code, err := generateShortCode(length)
			if err != nil {
				return nil, fmt.Errorf("generating short code: %w", err)
			}
			if domain.IsReservedAlias(code) {
				continue
			}
			existing, err := s.repo.GetByShortCode(ctx, code)
			if err != nil {
				return nil, fmt.Errorf("checking code availability: %w", err)
			}
			if existing != nil {
				continue
			}

			link.ShortCode = code
			err = s.repo.Create(ctx, link)
			if err == nil {
				return link, nil
			}
			if errors.Is(err, domain.ErrAliasTaken) {
				// Lost a race for this code, try another.
				continue
			}
			return nil, fmt.Errorf("saving link: %w", err)
		}
	}
	return nil, errors.New("unable to allocate a unique short code")
}

// Resolve looks up a short code and produces the redirect outcome.
// The click counter moves only on an immediate redirect; protected links
// count the click after password verification instead.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (*domain.Resolution, error) {
	if domain.IsReservedAlias(shortCode) {
		return nil, domain.ErrNotFound
	}

	link, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("loading link: %w", err)
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	if link.IsExpired(s.clock.Now().UTC()) {
		return nil, domain.ErrExpired
	}
	if link.IsProtected {
		return &domain.Resolution{State: domain.StatePasswordRequired, ShortCode: shortCode}, nil
	}

	if err := s.repo.IncrementClicks(ctx, shortCode); err != nil {
		return nil, fmt.Errorf("counting click: %w", err)
	}
	return &domain.Resolution{State: domain.StateRedirect, ShortCode: shortCode, LongURL: link.LongURL}, nil
}

// VerifyPassword checks the submitted password against the stored hash
// and returns the destination URL on success. Unprotected links and
// wrong passwords both fail with domain.ErrWrongPassword so the response
// never leaks which check failed.
func (s *LinkService) VerifyPassword(ctx context.Context, shortCode, password string) (string, error) {
	link, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return "", fmt.Errorf("loading link: %w", err)
	}
	if link == nil {
		return "", domain.ErrNotFound
	}
	if link.PasswordHash == "" || !s.hasher.Verify(password, link.PasswordHash) {
		return "", domain.ErrWrongPassword
	}

	if err := s.repo.IncrementClicks(ctx, shortCode); err != nil {
		return "", fmt.Errorf("counting click: %w", err)
	}
	return link.LongURL, nil
}

// ListByUser returns the caller's links, newest first.
func (s *LinkService) ListByUser(ctx context.Context, userID string) ([]domain.Link, error) {
	links, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return links, nil
}

// Delete removes a link. Deleting an absent code succeeds, since the end
// state is identical either way.
func (s *LinkService) Delete(ctx context.Context, shortCode string) error {
	if err := s.repo.Delete(ctx, shortCode); err != nil {
		return fmt.Errorf("deleting link: %w", err)
	}
	return nil
}

// parseExpiry accepts RFC 3339 timestamps as well as the zone-less
// variants browser datetime inputs emit. Zone-less values are treated as
// UTC; everything is normalized to UTC before storage.
func parseExpiry(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.ErrBadExpiry
}

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateShortCode(length int) (string, error) {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[num.Int64()]
	}
	return string(b), nil
}

// Ensure interface compliance
var _ ports.LinkService = (*LinkService)(nil)
