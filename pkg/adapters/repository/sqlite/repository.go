package sqlite

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/ziplink/ziplink/pkg/core/domain"
	"github.com/ziplink/ziplink/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		short_code TEXT PRIMARY KEY,
		long_url TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		clicks INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		password_hash TEXT,
		is_protected BOOLEAN NOT NULL DEFAULT 0,
		expires_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_links_user_id ON links(user_id);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (short_code, long_url, user_id, clicks, created_at, password_hash, is_protected, expires_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var passwordHash sql.NullString
	if link.PasswordHash != "" {
		passwordHash = sql.NullString{String: link.PasswordHash, Valid: true}
	}
	var expiresAt sql.NullTime
	if link.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *link.ExpiresAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		link.ShortCode, link.LongURL, link.UserID, link.Clicks,
		link.CreatedAt, passwordHash, link.IsProtected, expiresAt,
	)
	if err != nil {
		// The primary key on short_code is the final arbiter under
		// concurrent creations.
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return domain.ErrAliasTaken
		}
		return err
	}
	return nil
}

func (r *SQLiteRepository) GetByShortCode(ctx context.Context, code string) (*domain.Link, error) {
	query := `SELECT short_code, long_url, user_id, clicks, created_at, password_hash, is_protected, expires_at
			  FROM links WHERE short_code = ?`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *SQLiteRepository) IncrementClicks(ctx context.Context, code string) error {
	// Single UPDATE keeps the counter atomic under concurrent
	// resolutions of the same code.
	query := `UPDATE links SET clicks = clicks + 1 WHERE short_code = ?`
	_, err := r.db.ExecContext(ctx, query, code)
	return err
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Link, error) {
	query := `SELECT short_code, long_url, user_id, clicks, created_at, password_hash, is_protected, expires_at
			  FROM links WHERE user_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLinks(rows)
}

func (r *SQLiteRepository) Delete(ctx context.Context, code string) error {
	query := `DELETE FROM links WHERE short_code = ?`
	_, err := r.db.ExecContext(ctx, query, code)
	return err
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]domain.Link, error) {
	query := `SELECT short_code, long_url, user_id, clicks, created_at, password_hash, is_protected, expires_at
			  FROM links ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLinks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*domain.Link, error) {
	var link domain.Link
	var passwordHash sql.NullString
	var expiresAt sql.NullTime

	err := row.Scan(
		&link.ShortCode, &link.LongURL, &link.UserID, &link.Clicks,
		&link.CreatedAt, &passwordHash, &link.IsProtected, &expiresAt,
	)
	if err != nil {
		return nil, err
	}

	if passwordHash.Valid {
		link.PasswordHash = passwordHash.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		link.ExpiresAt = &t
	}
	link.CreatedAt = link.CreatedAt.UTC()
	return &link, nil
}

func collectLinks(rows *sql.Rows) ([]domain.Link, error) {
	var links []domain.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

// Ensure interface compliance
var _ ports.LinkRepository = (*SQLiteRepository)(nil)
