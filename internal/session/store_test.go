package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-prep/internal/interview"
	"github.com/spigell/interview-prep/internal/schemas"
)

func finishedReport(t *testing.T, role string, createdAt time.Time) *interview.Report {
	t.Helper()

	cfg := interview.Config{Role: role, Type: interview.TypeTechnical, QuestionCount: 2}
	s, err := interview.NewSession(cfg, []interview.Question{
		{Index: 0, Text: "What is a heap?", Category: interview.CategoryFactual},
		{Index: 1, Text: "Design a URL shortener.", Category: interview.CategorySystemDesign},
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if err := s.Record(
		interview.Answer{QuestionIndex: 0, Text: "A tree with the heap property."},
		interview.Evaluation{QuestionIndex: 0, Score: 80, KeyPoints: []string{"correct"}},
	); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Record(
		interview.Answer{QuestionIndex: 1},
		interview.Evaluation{QuestionIndex: 1, Score: 0, KeyPoints: []string{"no answer provided"}, Skipped: true},
	); err != nil {
		t.Fatalf("record: %v", err)
	}

	report, err := s.Finalize("Line one\nLine two", []string{"basics"}, []string{"design"},
		[]interview.Resource{{Title: "Primer", URL: "https://example.com/primer"}})
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	report.CreatedAt = createdAt
	return report
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	original := finishedReport(t, "Software Engineer", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	id, err := store.Save(context.Background(), original)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != original.ID {
		t.Fatalf("expected id %q, got %q", original.ID, id)
	}

	if _, err := os.Stat(filepath.Join(store.dir, "session_"+id+".json")); err != nil {
		t.Fatalf("expected session file: %v", err)
	}

	loaded, err := store.Load(context.Background(), id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.FinalScore != 40 || loaded.Summary != "Line one\nLine two" {
		t.Fatalf("unexpected report: %+v", loaded)
	}
	if !loaded.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("created at changed: %v", loaded.CreatedAt)
	}
	if len(loaded.Answers) != 2 || loaded.Answers[0].Text != "A tree with the heap property." {
		t.Fatalf("unexpected answers: %+v", loaded.Answers)
	}
	if ev := loaded.Evaluations[1]; !ev.Skipped || ev.Score != 0 {
		t.Fatalf("unexpected evaluation: %+v", ev)
	}
	if len(loaded.Resources) != 1 || loaded.Resources[0].URL != "https://example.com/primer" {
		t.Fatalf("unexpected resources: %+v", loaded.Resources)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.New(core))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	older := finishedReport(t, "Software Engineer", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := finishedReport(t, "UX Designer", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	for _, r := range []*interview.Report{older, newer} {
		if _, err := store.Save(context.Background(), r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	corrupt := filepath.Join(dir, "session_"+uuid.NewString()+".json")
	if err := os.WriteFile(corrupt, []byte(`{"id":"x"}`), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].ID != newer.ID || entries[0].Role != "UX Designer" || entries[1].ID != older.ID {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if entries[1].FinalScore != 40 || entries[1].Type != interview.TypeTechnical {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	if logs.FilterMessage("skipping unreadable session").Len() != 1 {
		t.Fatal("expected the corrupt file to be reported")
	}
}

func TestFileStoreLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	missing := uuid.NewString()
	_, err = store.Load(context.Background(), missing)
	var perr *PersistenceError
	if !errors.As(err, &perr) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found persistence error, got %v", err)
	}

	if _, err := store.Load(context.Background(), "../../etc/passwd"); !errors.As(err, &perr) {
		t.Fatalf("expected invalid id to be rejected, got %v", err)
	}

	corruptID := uuid.NewString()
	doc := `{"id":"` + corruptID + `","created_at":"2024-01-01T00:00:00Z",
		"config":{"role":"Software Engineer","interview_type":"technical","question_count":1},
		"questions":[{"index":0,"text":"What is a heap?"}],
		"answers":{},"evaluations":{"0":{"question_index":0,"score":"high"}},"final_score":0}`
	if err := os.WriteFile(filepath.Join(dir, "session_"+corruptID+".json"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err = store.Load(context.Background(), corruptID)
	var verr *schemas.ValidationError
	if !errors.As(err, &perr) || !errors.As(err, &verr) {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestSaveAssignsID(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	report := finishedReport(t, "Data Scientist", time.Now().UTC())
	report.ID = ""

	id, err := store.Save(context.Background(), report)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if uuid.Validate(id) != nil || report.ID != id {
		t.Fatalf("expected a generated uuid, got %q", id)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	t.Parallel()

	var perr *PersistenceError
	if _, err := New(context.Background(), Config{Backend: "s3"}, nil); !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("INTERVIEW_PREP_REDIS_ADDR")
	if addr == "" {
		t.Skip("INTERVIEW_PREP_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	prefix := "interview-prep-test:" + uuid.NewString() + ":"
	store, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: prefix, TTL: time.Minute}, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := store.client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			store.client.Del(ctx, keys...)
		}
		store.Close()
	})

	older := finishedReport(t, "DevOps Engineer", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	newer := finishedReport(t, "Product Manager", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	for _, r := range []*interview.Report{older, newer} {
		if _, err := store.Save(ctx, r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	loaded, err := store.Load(ctx, older.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Config.Role != "DevOps Engineer" {
		t.Fatalf("unexpected report: %+v", loaded.Config)
	}

	if err := store.client.Del(ctx, store.key(older.ID)).Err(); err != nil {
		t.Fatalf("expire: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != newer.ID {
		t.Fatalf("expected only the remaining session, got %+v", entries)
	}

	if n := store.client.ZCard(ctx, store.indexKey()).Val(); n != 1 {
		t.Fatalf("expected the expired id to be pruned, index has %d", n)
	}
}
