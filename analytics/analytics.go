// Package analytics records best-effort view and click telemetry for
// catalog records. Log writes never block or fail the user action that
// triggered them: errors are logged and swallowed, and the outbound
// affiliate navigation is issued by the caller regardless of outcome.
package analytics

import (
	"log"
	"regexp"
	"strings"
	"time"
)

// Kind tags a log entry with its subject collection.
type Kind string

const (
	KindProduct Kind = "product"
	KindArticle Kind = "article"
)

// ViewLog is one append-only page-view record. Logs are write-only from the
// application's perspective; aggregation for the dashboard runs over the
// product click counters, not over these rows.
type ViewLog struct {
	ID        int64
	SubjectID string
	Subject   Kind
	Source    string // referrer, or "direct"
	Timestamp time.Time
}

// ClickLog is one append-only outbound-click record.
type ClickLog struct {
	ID        int64
	SubjectID string
	URL       string
	Source    string
	Timestamp time.Time
}

// Source normalizes a referrer for storage: empty means "direct".
func Source(referrer string) string {
	if strings.TrimSpace(referrer) == "" {
		return "direct"
	}
	return referrer
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// CleanReferrer reduces a referrer URL to its domain for dashboard display.
func CleanReferrer(ref string) string {
	if ref == "" || ref == "direct" {
		return "Direct"
	}
	if m := referrerDomainRegex.FindStringSubmatch(ref); len(m) > 1 {
		return m[1]
	}
	return "Other"
}

// Recorder is the single entry point handlers use. It deduplicates view
// records per visitor and subject so re-renders of the same page do not
// inflate counts, and swallows every storage error.
type Recorder struct {
	store *Store
	dedup *dedup
	logf  func(format string, v ...any)
}

// NewRecorder creates a Recorder over the given store. Views from the same
// visitor for the same subject are recorded at most once per window.
func NewRecorder(store *Store, window time.Duration) *Recorder {
	return &Recorder{
		store: store,
		dedup: newDedup(window),
		logf:  log.Printf,
	}
}

// RecordView appends a view log entry. Best-effort: duplicates within the
// dedup window are dropped silently and storage failures are only logged.
func (r *Recorder) RecordView(kind Kind, subjectID, visitor, referrer string) {
	if subjectID == "" {
		return
	}
	if !r.dedup.first(visitor + "|" + string(kind) + "|" + subjectID) {
		return
	}
	v := &ViewLog{
		SubjectID: subjectID,
		Subject:   kind,
		Source:    Source(referrer),
		Timestamp: time.Now().UTC(),
	}
	if err := r.store.SaveView(v); err != nil {
		r.logf("analytics: save view for %s %s: %v", kind, subjectID, err)
	}
}

// RecordClick appends a click log entry. The caller increments the subject's
// click counter through the catalog store and performs the outbound
// navigation independently; this write is attempted once and never retried.
func (r *Recorder) RecordClick(subjectID, destinationURL, referrer string) {
	c := &ClickLog{
		SubjectID: subjectID,
		URL:       destinationURL,
		Source:    Source(referrer),
		Timestamp: time.Now().UTC(),
	}
	if err := r.store.SaveClick(c); err != nil {
		r.logf("analytics: save click for %s: %v", subjectID, err)
	}
}
