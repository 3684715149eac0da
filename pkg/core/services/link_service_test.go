package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ziplink/ziplink/pkg/adapters/repository/memory"
	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/core/services"
)

var testTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*services.LinkService, *memory.MemoryRepository, *domain.MockClock) {
	repo := memory.NewMemoryRepository()
	clock := domain.NewMockClock(testTime)
	svc := services.NewLinkService(repo, services.NewPasswordHasherWithCost(bcrypt.MinCost), clock)
	return svc, repo, clock
}

func TestShorten_CustomAlias(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://example.com", "Promo", "", "user-1", "")
	require.NoError(t, err)

	assert.Equal(t, "promo", link.ShortCode, "alias should be lower-cased")
	assert.Equal(t, "https://example.com", link.LongURL)
	assert.Equal(t, "user-1", link.UserID)
	assert.Equal(t, int64(0), link.Clicks)
	assert.Equal(t, testTime, link.CreatedAt)
	assert.False(t, link.IsProtected)
	assert.Nil(t, link.ExpiresAt)
}

func TestShorten_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		longURL string
		alias   string
		expiry  string
		wantErr error
	}{
		{
			name:    "missing long url",
			longURL: "",
			wantErr: domain.ErrLongURLRequired,
		},
		{
			name:    "alias with illegal chars",
			longURL: "https://example.com",
			alias:   "bad alias!",
			wantErr: domain.ErrAliasInvalid,
		},
		{
			name:    "alias too short",
			longURL: "https://example.com",
			alias:   "ad",
			wantErr: domain.ErrAliasTooShort,
		},
		{
			name:    "reserved alias",
			longURL: "https://example.com",
			alias:   "dashboard",
			wantErr: domain.ErrAliasReserved,
		},
		{
			name:    "unparseable expiry",
			longURL: "https://example.com",
			expiry:  "next tuesday",
			wantErr: domain.ErrBadExpiry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()

			_, err := svc.Shorten(context.Background(), tt.longURL, tt.alias, "", "", tt.expiry)
			assert.ErrorIs(t, err, tt.wantErr)

			// No record may be persisted on a failed create.
			links, err := repo.Dump(context.Background())
			require.NoError(t, err)
			assert.Empty(t, links)
		})
	}
}

func TestShorten_AliasConflict(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Shorten(ctx, "https://example.com/a", "promo", "", "user-1", "")
	require.NoError(t, err)

	_, err = svc.Shorten(ctx, "https://example.com/b", "promo", "", "user-2", "")
	assert.ErrorIs(t, err, domain.ErrAliasTaken)

	// The original record must not be overwritten.
	res, err := svc.Resolve(ctx, first.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", res.LongURL)
}

func TestShorten_RandomCode(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://example.com", "", "", "", "")
	require.NoError(t, err)

	assert.Len(t, link.ShortCode, 6)
	assert.False(t, domain.IsReservedAlias(link.ShortCode))

	// A second create always produces a fresh code.
	other, err := svc.Shorten(ctx, "https://example.com", "", "", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, link.ShortCode, other.ShortCode)
}

func TestShorten_Password(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://x.com", "", "secret", "", "")
	require.NoError(t, err)
	assert.True(t, link.IsProtected)

	stored, err := repo.GetByShortCode(ctx, link.ShortCode)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret", "plaintext must never be stored")
}

func TestShorten_ExpiryNormalizedToUTC(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		expiry string
		want   time.Time
	}{
		{
			name:   "rfc3339 with offset",
			expiry: "2025-06-01T12:00:00+05:30",
			want:   time.Date(2025, 6, 1, 6, 30, 0, 0, time.UTC),
		},
		{
			name:   "zone-less treated as utc",
			expiry: "2025-06-01T12:00:00",
			want:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:   "date only",
			expiry: "2025-06-01",
			want:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := svc.Shorten(ctx, "https://example.com", "", "", "", tt.expiry)
			require.NoError(t, err)

			stored, err := repo.GetByShortCode(ctx, link.ShortCode)
			require.NoError(t, err)
			require.NotNil(t, stored.ExpiresAt)
			assert.True(t, stored.ExpiresAt.Equal(tt.want))
			assert.Equal(t, time.UTC, stored.ExpiresAt.Location())
		})
	}
}

func TestResolve_Redirect(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://example.com", "promo", "", "", "")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, domain.StateRedirect, res.State)
	assert.Equal(t, "https://example.com", res.LongURL)

	stored, _ := repo.GetByShortCode(ctx, "promo")
	assert.Equal(t, int64(1), stored.Clicks)
}

func TestResolve_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Resolve(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_ReservedCodeIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Resolve(context.Background(), "shorten")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_CaseSensitiveLookup(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Shorten(ctx, "https://example.com", "promo", "", "", "")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "PROMO")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_Expired(t *testing.T) {
	svc, repo, clock := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://example.com", "", "", "", testTime.Add(time.Hour).Format(time.RFC3339))
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	_, err = svc.Resolve(ctx, link.ShortCode)
	assert.ErrorIs(t, err, domain.ErrExpired)

	// An expired resolution never counts a click.
	stored, _ := repo.GetByShortCode(ctx, link.ShortCode)
	assert.Equal(t, int64(0), stored.Clicks)
}

func TestResolve_ProtectedRequiresPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://x.com", "", "secret", "", "")
	require.NoError(t, err)

	res, err := svc.Resolve(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePasswordRequired, res.State)
	assert.Equal(t, link.ShortCode, res.ShortCode)
	assert.Empty(t, res.LongURL, "destination must not leak before verification")

	// The gateway stage never counts a click.
	stored, _ := repo.GetByShortCode(ctx, link.ShortCode)
	assert.Equal(t, int64(0), stored.Clicks)
}

func TestVerifyPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://x.com", "", "secret", "", "")
	require.NoError(t, err)

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.VerifyPassword(ctx, "missing", "secret")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.VerifyPassword(ctx, link.ShortCode, "wrong")
		assert.ErrorIs(t, err, domain.ErrWrongPassword)

		stored, _ := repo.GetByShortCode(ctx, link.ShortCode)
		assert.Equal(t, int64(0), stored.Clicks)
	})

	t.Run("correct password", func(t *testing.T) {
		longURL, err := svc.VerifyPassword(ctx, link.ShortCode, "secret")
		require.NoError(t, err)
		assert.Equal(t, "https://x.com", longURL)

		stored, _ := repo.GetByShortCode(ctx, link.ShortCode)
		assert.Equal(t, int64(1), stored.Clicks)
	})

	t.Run("unprotected link fails verification", func(t *testing.T) {
		open, err := svc.Shorten(ctx, "https://example.com", "open-link", "", "", "")
		require.NoError(t, err)

		_, err = svc.VerifyPassword(ctx, open.ShortCode, "anything")
		assert.ErrorIs(t, err, domain.ErrWrongPassword)
	})
}

func TestListByUser(t *testing.T) {
	svc, _, clock := newTestService()
	ctx := context.Background()

	first, err := svc.Shorten(ctx, "https://example.com/1", "", "", "user-1", "")
	require.NoError(t, err)
	clock.Advance(time.Minute)

	second, err := svc.Shorten(ctx, "https://example.com/2", "", "", "user-1", "")
	require.NoError(t, err)
	clock.Advance(time.Minute)

	_, err = svc.Shorten(ctx, "https://example.com/3", "", "", "user-2", "")
	require.NoError(t, err)

	links, err := svc.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, links, 2)

	// Newest first, and only the caller's links.
	assert.Equal(t, second.ShortCode, links[0].ShortCode)
	assert.Equal(t, first.ShortCode, links[1].ShortCode)
}

func TestListByUser_Empty(t *testing.T) {
	svc, _, _ := newTestService()

	links, err := svc.ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestDelete_Idempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	link, err := svc.Shorten(ctx, "https://example.com", "promo", "", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, link.ShortCode))
	_, err = svc.Resolve(ctx, link.ShortCode)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is still success: the end state is identical.
	assert.NoError(t, svc.Delete(ctx, link.ShortCode))
	assert.NoError(t, svc.Delete(ctx, "never-existed"))
}
