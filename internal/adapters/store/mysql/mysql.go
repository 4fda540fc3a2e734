package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/baditaflorin/go_issue_similarity/internal/adapters/store"
	"github.com/baditaflorin/go_issue_similarity/internal/core/domain"
	"github.com/baditaflorin/go_issue_similarity/internal/ports"
	driver "github.com/go-sql-driver/mysql"
)

// DefaultReadTimeout bounds a single candidate query.
const DefaultReadTimeout = 8 * time.Second

// ErrNoDSN is returned when Open is called without a DSN.
var ErrNoDSN = errors.New("mysql: empty DSN")

// Schema is the subset of the issues table this source reads.
const Schema = `CREATE TABLE IF NOT EXISTS issues (
    id BIGINT AUTO_INCREMENT PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    city VARCHAR(128) NOT NULL,
    category VARCHAR(64) NULL,
    votes INT NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    INDEX idx_issues_city_created (city, created_at)
)`

const recentQuery = `SELECT id, title, city, category, votes, created_at
    FROM issues
    WHERE city = ?
    ORDER BY created_at DESC, id DESC
    LIMIT ?`

// Options tune the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ReadTimeout     time.Duration
}

// DefaultOptions returns the pool settings used by the server.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		ReadTimeout:     DefaultReadTimeout,
	}
}

// Store reads candidate issues from MySQL.
type Store struct {
	conn        *sql.DB
	readTimeout time.Duration
}

var _ ports.CandidateSource = (*Store)(nil)

// NormalizeDSN parses dsn and turns on time parsing so DATETIME columns
// scan into time.Time.
func NormalizeDSN(dsn string) (*driver.Config, error) {
	if dsn == "" {
		return nil, ErrNoDSN
	}
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	return cfg, nil
}

// Open connects to MySQL and verifies the connection.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := NormalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create mysql connector: %w", err)
	}
	conn := sql.OpenDB(connector)

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return New(conn, opts.ReadTimeout), nil
}

// New wraps an existing connection pool.
func New(conn *sql.DB, readTimeout time.Duration) *Store {
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}
	return &Store{conn: conn, readTimeout: readTimeout}
}

// Conn exposes the underlying pool.
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.conn.Close()
}

// EnsureSchema creates the issues table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create issues table: %w", err)
	}
	return nil
}

// Recent returns up to limit issues of city, newest first.
func (s *Store) Recent(ctx context.Context, city string, limit int) ([]domain.Candidate[domain.Issue], error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	rows, err := s.conn.QueryContext(ctx, recentQuery, city, store.EffectiveLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query recent issues for %q: %w", city, err)
	}
	defer rows.Close()

	out := make([]domain.Candidate[domain.Issue], 0, store.EffectiveLimit(limit))
	for rows.Next() {
		var (
			id       int64
			issue    domain.Issue
			title    string
			category sql.NullString
		)
		if err := rows.Scan(&id, &title, &issue.City, &category, &issue.Votes, &issue.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan issue row: %w", err)
		}
		issue.Category = category.String
		out = append(out, domain.Candidate[domain.Issue]{
			ID:      strconv.FormatInt(id, 10),
			Title:   title,
			Payload: issue,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issue rows: %w", err)
	}
	return out, nil
}
