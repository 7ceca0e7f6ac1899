// Package sqlitesink records logging sessions in a SQLite database.
//
// Each Sink opens one session row on creation. Messages are appended with
// a per-session sequence number and EndSession stamps the session with its
// final status. The schema is created on Open:
//
//	sessions(id, started_at, ended_at, status, reason, host, user)
//	messages(session_id, seq, at, severity, category, logger, user,
//	         method, class, file, line, text, error, fields)
package sqlitesink

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/user"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER NULL,
	status     TEXT NULL,
	reason     TEXT NULL,
	host       TEXT NOT NULL,
	user       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	seq        INTEGER NOT NULL,
	at         INTEGER NOT NULL,
	severity   TEXT NOT NULL,
	category   TEXT NOT NULL,
	logger     TEXT NOT NULL,
	user       TEXT NOT NULL,
	method     TEXT NOT NULL,
	class      TEXT NOT NULL,
	file       TEXT NOT NULL,
	line       INTEGER NOT NULL,
	text       TEXT NOT NULL,
	error      TEXT NULL,
	fields     TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);`

// Record is a message read back from the store
type Record struct {
	SessionID  string
	Seq        int64
	Time       time.Time
	Severity   severity.Tier
	Category   string
	LoggerName string
	User       string
	Source     sink.Source
	Text       string
	Error      string
	Fields     map[string]interface{}
}

// Session is a session row read back from the store
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Ended     bool
	Status    sink.Status
	Reason    string
	Host      string
	User      string
}

// Sink writes messages to SQLite. It is safe for concurrent use.
type Sink struct {
	db        *sql.DB
	sessionID string
	user      string

	mu     sync.Mutex
	seq    int64
	closed bool
}

// Open opens (or creates) the database at path and starts a new session.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Sink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// SQLite allows a single writer, and in-memory databases live per
	// connection.
	db.SetMaxOpenConns(1)

	s, err := newSink(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func newSink(ctx context.Context, db *sql.DB) (*Sink, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	host, _ := os.Hostname()
	var userName string
	if u, err := user.Current(); err == nil {
		userName = u.Username
	}

	s := &Sink{
		db:        db,
		sessionID: uuid.New().String(),
		user:      userName,
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, host, user) VALUES (?,?,?,?)`,
		s.sessionID, time.Now().UnixNano(), host, userName)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// SessionID returns the id of the session this sink writes to
func (s *Sink) SessionID() string {
	return s.sessionID
}

// Write appends msg to the current session. An empty User is recorded
// as the process user.
func (s *Sink) Write(ctx context.Context, msg sink.Message) error {
	fields, err := encodeFields(msg)
	if err != nil {
		return err
	}

	userName := msg.User
	if userName == "" {
		userName = s.user
	}
	at := msg.Time
	if at.IsZero() {
		at = time.Now()
	}
	var errText sql.NullString
	if msg.Err != nil {
		errText = sql.NullString{String: msg.Err.Error(), Valid: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return sink.ErrClosed
	}
	s.seq++
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, seq, at, severity, category, logger, user, method, class, file, line, text, error, fields)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.sessionID, s.seq, at.UnixNano(), msg.Severity.String(), msg.Category, msg.LoggerName, userName,
		msg.Source.MethodName, msg.Source.ClassName, msg.Source.FileName, msg.Source.LineNumber,
		msg.Text, errText, fields)
	if err != nil {
		s.seq--
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func encodeFields(msg sink.Message) (string, error) {
	if len(msg.Fields) == 0 {
		return "{}", nil
	}
	m := make(map[string]interface{}, len(msg.Fields))
	for _, f := range msg.Fields {
		m[f.Key] = f.Value()
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal fields: %w", err)
	}
	return string(b), nil
}

// EndSession stamps the session with its end time, status and reason
func (s *Sink) EndSession(ctx context.Context, status sink.Status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return sink.ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, status = ?, reason = ? WHERE id = ?`,
		time.Now().UnixNano(), status.String(), reason, s.sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Close closes the database. Further writes return sink.ErrClosed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Messages returns the messages of a session in sequence order
func (s *Sink) Messages(ctx context.Context, sessionID string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, sink.ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, seq, at, severity, category, logger, user, method, class, file, line, text, error, fields
		 FROM messages WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r        Record
			at       int64
			tier     string
			errText  sql.NullString
			fieldsJS string
		)
		if err := rows.Scan(&r.SessionID, &r.Seq, &at, &tier, &r.Category, &r.LoggerName, &r.User,
			&r.Source.MethodName, &r.Source.ClassName, &r.Source.FileName, &r.Source.LineNumber,
			&r.Text, &errText, &fieldsJS); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		r.Time = time.Unix(0, at)
		if r.Severity, err = severity.ParseTier(tier); err != nil {
			return nil, fmt.Errorf("scan message %d: %w", r.Seq, err)
		}
		r.Error = errText.String
		if err := json.Unmarshal([]byte(fieldsJS), &r.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal fields of message %d: %w", r.Seq, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Session reads back a session row
func (s *Sink) Session(ctx context.Context, sessionID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Session{}, sink.ErrClosed
	}

	var (
		out     Session
		started int64
		ended   sql.NullInt64
		status  sql.NullString
		reason  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, ended_at, status, reason, host, user FROM sessions WHERE id = ?`, sessionID).
		Scan(&out.ID, &started, &ended, &status, &reason, &out.Host, &out.User)
	if err != nil {
		return Session{}, fmt.Errorf("query session %s: %w", sessionID, err)
	}
	out.StartedAt = time.Unix(0, started)
	if ended.Valid {
		out.Ended = true
		out.EndedAt = time.Unix(0, ended.Int64)
	}
	if status.String == sink.Crashed.String() {
		out.Status = sink.Crashed
	}
	out.Reason = reason.String
	return out, nil
}
