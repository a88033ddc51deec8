package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for the telemetry logs. It lives in
// its own SQLite database so analytics churn never contends with catalog
// reads.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS view_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject_id TEXT NOT NULL,
			subject_kind TEXT NOT NULL,
			source TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS click_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject_id TEXT NOT NULL,
			url TEXT NOT NULL,
			source TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_view_logs_timestamp ON view_logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_view_logs_subject ON view_logs(subject_id);
		CREATE INDEX IF NOT EXISTS idx_click_logs_timestamp ON click_logs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_click_logs_subject ON click_logs(subject_id);
	`)
	return err
}

// SaveView appends a view log entry.
func (s *Store) SaveView(v *ViewLog) error {
	_, err := s.db.Exec(
		`INSERT INTO view_logs (subject_id, subject_kind, source, timestamp) VALUES (?, ?, ?, ?)`,
		v.SubjectID, string(v.Subject), v.Source, v.Timestamp)
	return err
}

// SaveClick appends a click log entry.
func (s *Store) SaveClick(c *ClickLog) error {
	_, err := s.db.Exec(
		`INSERT INTO click_logs (subject_id, url, source, timestamp) VALUES (?, ?, ?, ?)`,
		c.SubjectID, c.URL, c.Source, c.Timestamp)
	return err
}

// CountViews returns the number of view log rows for one subject.
func (s *Store) CountViews(subjectID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM view_logs WHERE subject_id = ?`, subjectID).Scan(&n)
	return n, err
}

// TotalViews returns the number of view log rows across all subjects.
func (s *Store) TotalViews() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM view_logs`).Scan(&n)
	return n, err
}

// CountClicks returns the number of click log rows for one subject.
func (s *Store) CountClicks(subjectID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM click_logs WHERE subject_id = ?`, subjectID).Scan(&n)
	return n, err
}

// SourceCount is one row of the referrer breakdown.
type SourceCount struct {
	Source string
	Count  int
}

// TopSources returns the most frequent view-log sources, rawest first.
// Sources are stored as recorded; callers collapse them to domains with
// CleanReferrer for display.
func (s *Store) TopSources(n int) ([]SourceCount, error) {
	rows, err := s.db.Query(
		`SELECT source, COUNT(*) FROM view_logs GROUP BY source ORDER BY COUNT(*) DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SourceCount
	for rows.Next() {
		var sc SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// DeleteOldData removes log rows older than the retention period.
func (s *Store) DeleteOldData(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	if _, err := s.db.Exec(`DELETE FROM view_logs WHERE timestamp < ?`, cutoff); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM click_logs WHERE timestamp < ?`, cutoff)
	return err
}

// StartCleanupScheduler runs DeleteOldData on the given interval until the
// returned stop function is called.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.DeleteOldData(retentionDays); err != nil {
					fmt.Fprintf(os.Stderr, "analytics cleanup: %v\n", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()
	return func() { close(done) }
}
