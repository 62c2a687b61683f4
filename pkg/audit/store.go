package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Store persists audit events to the audit_events table
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Record is the row shape of one audit event. Actor, operation, result and
// client IP are lifted out of the structured data so they can be queried;
// the subject element is kept whole.
type Record struct {
	OccurredAt time.Time
	Kind       string
	Severity   Severity
	Actor      string
	Operation  string
	Result     string
	ClientIP   string
	Subject    map[string]string
	Message    string
}

// NewRecord flattens an event into its row shape
func NewRecord(event Event, at time.Time) Record {
	sd := event.StructuredData()
	subject := sd[SDIDSubject]
	if subject == nil {
		subject = map[string]string{}
	}
	return Record{
		OccurredAt: at.UTC(),
		Kind:       event.MessageID(),
		Severity:   event.Severity(),
		Actor:      sd[SDIDAuth]["user"],
		Operation:  sd[SDIDAction]["operation"],
		Result:     sd[SDIDAction]["result"],
		ClientIP:   sd[SDIDClient]["ip"],
		Subject:    subject,
		Message:    event.Message(),
	}
}

// NewStore opens the database named by AUDIT_DATABASE_URL. Without it the
// audit database is off and NewStore returns nil.
func NewStore() (*Store, error) {
	dbURL := os.Getenv("AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	return NewStoreWithDB(db), nil
}

// NewStoreWithDB wraps an open connection
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts one event
func (s *Store) Save(ctx context.Context, event Event) error {
	if s.db == nil {
		return nil
	}

	rec := NewRecord(event, s.now())
	subject, err := json.Marshal(rec.Subject)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_events (occurred_at, kind, severity, actor, operation, result, client_ip, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		rec.OccurredAt,
		rec.Kind,
		int(rec.Severity),
		nullable(rec.Actor),
		nullable(rec.Operation),
		nullable(rec.Result),
		nullable(rec.ClientIP),
		subject,
		rec.Message,
	)
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
