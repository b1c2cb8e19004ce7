// Package session persists finalized interview reports and lists the session history.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/schemas"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	DefaultDir    = "sessions"
	DefaultPrefix = "interview-prep:"
)

// ErrNotFound is wrapped by PersistenceError when no session has the requested id.
var ErrNotFound = errors.New("session not found")

// Store saves reports and reads them back. Implementations validate every loaded
// document against the session schema.
type Store interface {
	Save(ctx context.Context, report *interview.Report) (string, error)
	Load(ctx context.Context, id string) (*interview.Report, error)
	List(ctx context.Context) ([]Entry, error)
}

// Entry is one line of the session history, newest first.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Role       string
	Domain     string
	Type       interview.Type
	FinalScore float64
}

type Config struct {
	Backend string      `mapstructure:"backend"`
	Dir     string      `mapstructure:"dir"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

// PersistenceError wraps every failure of a storage backend.
type PersistenceError struct {
	Op    string
	ID    string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("session %s %s: %v", e.Op, e.ID, e.Cause)
	}
	return fmt.Sprintf("session %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// New opens the backend named in cfg. An empty backend means the file store.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir, log)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.Redis, log)
	default:
		return nil, &PersistenceError{Op: "open", Cause: fmt.Errorf("unknown storage backend %q", cfg.Backend)}
	}
}

func entryOf(r *interview.Report) Entry {
	return Entry{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		Role:       r.Config.Role,
		Domain:     r.Config.Domain,
		Type:       r.Config.Type,
		FinalScore: r.FinalScore,
	}
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// prepare assigns a missing id and creation time and returns the validated document.
func prepare(report *interview.Report) ([]byte, error) {
	if report == nil {
		return nil, &PersistenceError{Op: "save", Cause: errors.New("nil report")}
	}
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if err := checkID(report.ID); err != nil {
		return nil, &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	if err := schemas.Validate(schemas.Session, data); err != nil {
		return nil, &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	return data, nil
}

func decode(id string, data []byte) (*interview.Report, error) {
	if err := schemas.Validate(schemas.Session, data); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	var report interview.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}
	return &report, nil
}

func checkID(id string) error {
	if err := uuid.Validate(id); err != nil {
		return fmt.Errorf("invalid session id %q: %w", id, err)
	}
	return nil
}
