// Package readings persists numerology readings in SQLite so they can be
// listed, re-rendered and summarized later.
package readings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/HendryAvila/magicnumbers/internal/numerology"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// MaxRecent caps how many readings Recent returns.
const MaxRecent = 200

// ErrNotFound is returned when a reading id does not exist.
var ErrNotFound = errors.New("readings: not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Reading is one persisted analysis.
type Reading struct {
	ID              string          `json:"id"`
	Input           string          `json:"input"`
	Digits          string          `json:"digits"`
	Locale          string          `json:"locale"`
	Source          string          `json:"source"`
	SumBeforeReduce int             `json:"sum_before_reduce"`
	Reduced         int             `json:"reduced"`
	Frequency       float64         `json:"frequency"`
	SummaryKey      string          `json:"summary_key"`
	Result          json.RawMessage `json:"result,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// Sources recorded with a reading.
const (
	SourceGenerated = "generated"
	SourceRead      = "read"
)

// SaveParams holds the input for saving a reading.
type SaveParams struct {
	Result numerology.Result
	Locale string
	Source string
}

// Stats holds aggregate history statistics.
type Stats struct {
	TotalReadings  int         `json:"total_readings"`
	DistinctDigits int         `json:"distinct_digits"`
	ByReduced      map[int]int `json:"by_reduced"`
	TopSummaryKey  string      `json:"top_summary_key,omitempty"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds reading store configuration.
type Config struct {
	DataDir string
	// DefaultRecent is used by Recent when the caller passes no limit.
	DefaultRecent int
}

// DefaultConfig returns the default configuration for the reading store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:       filepath.Join(home, ".magicnumbers"),
		DefaultRecent: 20,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the reading history backed by SQLite.
type Store struct {
	db  *sql.DB
	cfg Config
	now func() time.Time
}

// New creates a Store with the given configuration.
// It creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("readings: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "readings.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("readings: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("readings: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("readings: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS readings (
			id                TEXT PRIMARY KEY,
			input             TEXT    NOT NULL,
			digits            TEXT    NOT NULL,
			locale            TEXT    NOT NULL,
			source            TEXT    NOT NULL DEFAULT 'read',
			sum_before_reduce INTEGER NOT NULL,
			reduced           INTEGER NOT NULL,
			frequency         REAL    NOT NULL,
			summary_key       TEXT    NOT NULL,
			result            TEXT    NOT NULL,
			created_at        TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_readings_created ON readings(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_readings_digits  ON readings(digits);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Readings ────────────────────────────────────────────────────────────────

// Save persists the analysis in p and returns the stored reading.
func (s *Store) Save(p SaveParams) (*Reading, error) {
	raw, err := json.Marshal(p.Result)
	if err != nil {
		return nil, fmt.Errorf("readings: encode result: %w", err)
	}
	source := p.Source
	if source == "" {
		source = SourceRead
	}

	r := &Reading{
		ID:              uuid.NewString(),
		Input:           p.Result.Number,
		Digits:          p.Result.Digits,
		Locale:          p.Locale,
		Source:          source,
		SumBeforeReduce: p.Result.CrossSum.SumBeforeReduce,
		Reduced:         p.Result.CrossSum.Reduced,
		Frequency:       p.Result.Frequency,
		SummaryKey:      string(p.Result.FinalSummary()),
		Result:          raw,
		CreatedAt:       s.now().UTC().Format(time.DateTime),
	}

	if _, err := s.db.Exec(
		`INSERT INTO readings (id, input, digits, locale, source, sum_before_reduce, reduced,
		                       frequency, summary_key, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Input, r.Digits, r.Locale, r.Source, r.SumBeforeReduce, r.Reduced,
		r.Frequency, r.SummaryKey, string(r.Result), r.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("readings: save: %w", err)
	}
	return r, nil
}

// Get returns one reading including its stored result.
func (s *Store) Get(id string) (*Reading, error) {
	row := s.db.QueryRow(
		`SELECT id, input, digits, locale, source, sum_before_reduce, reduced,
		        frequency, summary_key, result, created_at
		 FROM readings WHERE id = ?`, id,
	)
	var (
		r   Reading
		raw string
	)
	err := row.Scan(&r.ID, &r.Input, &r.Digits, &r.Locale, &r.Source, &r.SumBeforeReduce,
		&r.Reduced, &r.Frequency, &r.SummaryKey, &raw, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("readings: get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("readings: get %q: %w", id, err)
	}
	r.Result = json.RawMessage(raw)
	return &r, nil
}

// Recent returns the newest readings first, without their stored result.
// A limit of zero or less selects the configured default; the result is
// capped at MaxRecent.
func (s *Store) Recent(limit int) ([]Reading, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultRecent
	}
	limit = max(1, min(limit, MaxRecent))

	rows, err := s.db.Query(
		`SELECT id, input, digits, locale, source, sum_before_reduce, reduced,
		        frequency, summary_key, created_at
		 FROM readings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("readings: recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []Reading{}
	for rows.Next() {
		var r Reading
		if err := rows.Scan(&r.ID, &r.Input, &r.Digits, &r.Locale, &r.Source, &r.SumBeforeReduce,
			&r.Reduced, &r.Frequency, &r.SummaryKey, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("readings: recent: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("readings: recent: %w", err)
	}
	return out, nil
}

// Delete removes a reading permanently.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("readings: delete %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("readings: delete %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("readings: delete %q: %w", id, ErrNotFound)
	}
	return nil
}

// ─── Stats ───────────────────────────────────────────────────────────────────

// Stats returns aggregate history statistics.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{ByReduced: map[int]int{}}

	if err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT digits) FROM readings`,
	).Scan(&st.TotalReadings, &st.DistinctDigits); err != nil {
		return nil, fmt.Errorf("readings: stats: %w", err)
	}
	if st.TotalReadings == 0 {
		return st, nil
	}

	rows, err := s.db.Query(`SELECT reduced, COUNT(*) FROM readings GROUP BY reduced`)
	if err != nil {
		return nil, fmt.Errorf("readings: stats: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var reduced, n int
		if err := rows.Scan(&reduced, &n); err != nil {
			return nil, fmt.Errorf("readings: stats: %w", err)
		}
		st.ByReduced[reduced] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("readings: stats: %w", err)
	}

	if err := s.db.QueryRow(
		`SELECT summary_key FROM readings
		 GROUP BY summary_key
		 ORDER BY COUNT(*) DESC, summary_key ASC
		 LIMIT 1`,
	).Scan(&st.TopSummaryKey); err != nil {
		return nil, fmt.Errorf("readings: stats: %w", err)
	}
	return st, nil
}

// Decode unmarshals the stored result of a reading fetched with Get.
func (r *Reading) Decode() (numerology.Result, error) {
	var res numerology.Result
	if len(r.Result) == 0 {
		return res, errors.New("readings: decode: reading has no stored result")
	}
	if err := json.Unmarshal(r.Result, &res); err != nil {
		return res, fmt.Errorf("readings: decode: %w", err)
	}
	return res, nil
}
