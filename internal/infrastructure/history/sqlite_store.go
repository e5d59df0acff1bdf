// Package history persists generated plans in a SQLite database so the
// history command can list and search past queries.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/ports"
)

// SQLiteStore persists plan history in a SQLite database. When the database
// cannot be opened the store degrades to a silent no-op rather than blocking
// queries.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.plansh/history/history.db database.
func NewSQLiteStore() *SQLiteStore {
	return NewSQLiteStoreAt(filepath.Join(userHome(), ".plansh", "history", "history.db"))
}

// NewSQLiteStoreAt opens a store at an explicit path.
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		prompt TEXT,
		provider TEXT,
		model TEXT,
		plan_id TEXT,
		command TEXT,
		args TEXT,
		executed INTEGER,
		exit_code INTEGER
	);`)
	return err
}

// Save inserts a new record, assigning an id when the caller left it empty.
func (s *SQLiteStore) Save(record domain.PlanRecord) error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	args, err := json.Marshal(record.Args)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`INSERT INTO plans
		(id, timestamp, prompt, provider, model, plan_id, command, args, executed, exit_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(domain.TimestampFormat),
		record.Prompt,
		record.Provider,
		record.Model,
		record.PlanID,
		record.Command,
		string(args),
		boolToInt(record.Executed),
		record.ExitCode,
	)
	return err
}

// Records returns history entries, newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.PlanRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, prompt, provider, model, plan_id, command, args, executed, exit_code FROM plans")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE prompt LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PlanRecord
	for rows.Next() {
		var rec domain.PlanRecord
		var ts, rawArgs string
		var executed int
		if err := rows.Scan(&rec.ID, &ts, &rec.Prompt, &rec.Provider, &rec.Model,
			&rec.PlanID, &rec.Command, &rawArgs, &executed, &rec.ExitCode); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		if rawArgs != "" {
			_ = json.Unmarshal([]byte(rawArgs), &rec.Args)
		}
		rec.Executed = executed == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec("DELETE FROM plans")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.PlanStore = (*SQLiteStore)(nil)
