package session

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/interview-prep/internal/interview"
)

const (
	filePrefix = "session_"
	fileSuffix = ".json"
)

// FileStore keeps one indented JSON document per session in a directory.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Cause: err}
	}
	return &FileStore{dir: dir, logger: log}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, filePrefix+id+fileSuffix)
}

func (s *FileStore) Save(ctx context.Context, report *interview.Report) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &PersistenceError{Op: "save", Cause: err}
	}

	data, err := prepare(report)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, filePrefix+"*.tmp")
	if err != nil {
		return "", &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}
	if err := os.Rename(tmp.Name(), s.path(report.ID)); err != nil {
		return "", &PersistenceError{Op: "save", ID: report.ID, Cause: err}
	}

	s.logger.Debug("session saved", zap.String("id", report.ID), zap.String("path", s.path(report.ID)))
	return report.ID, nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*interview.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}
	if err := checkID(id); err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: ErrNotFound}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", ID: id, Cause: err}
	}

	return decode(id, data)
}

// List skips documents that fail validation and logs them.
func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Cause: err}
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, &PersistenceError{Op: "list", Cause: err}
		}

		name := f.Name()
		if f.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)

		report, err := s.Load(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unreadable session", zap.String("file", name), zap.Error(err))
			continue
		}
		entries = append(entries, entryOf(report))
	}

	sortEntries(entries)
	return entries, nil
}
