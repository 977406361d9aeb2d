package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskboard/app/models"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
	if err := kv.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := kv.Put(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("Get = %s, want overwritten value", got)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete of absent key: %v", err)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestFileKV(t *testing.T) {
	kv, err := NewFile(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	exerciseKV(t, kv)
}

func TestFileKVSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	kv, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := kv.Put(ctx, TasksKey, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	reopened, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	got, err := reopened.Get(ctx, TasksKey)
	if err != nil || string(got) != `[]` {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestFileKVRejectsPathKeys(t *testing.T) {
	kv, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := kv.Put(context.Background(), "../escape", []byte("x")); err == nil {
		t.Fatal("expected error for key with path separator")
	}
}

func TestSQLKV(t *testing.T) {
	dsn := os.Getenv("TASKBOARD_TEST_SQL_DSN")
	if dsn == "" {
		t.Skip("TASKBOARD_TEST_SQL_DSN not set")
	}
	driver := os.Getenv("TASKBOARD_TEST_SQL_DRIVER")
	if driver == "" {
		driver = "mysql"
	}
	kv, err := NewSQL(context.Background(), driver, dsn)
	if err != nil {
		t.Fatalf("NewSQL: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	exerciseKV(t, kv)
}

func TestNeo4jKV(t *testing.T) {
	uri := os.Getenv("TASKBOARD_TEST_NEO4J_URI")
	if uri == "" {
		t.Skip("TASKBOARD_TEST_NEO4J_URI not set")
	}
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(os.Getenv("NEO4J_USER"), os.Getenv("NEO4J_PASSWORD"), ""))
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	kv, err := NewNeo4j(context.Background(), driver)
	if err != nil {
		t.Fatalf("NewNeo4j: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	exerciseKV(t, kv)
}

func TestNewSQLUnknownDriver(t *testing.T) {
	if _, err := NewSQL(context.Background(), "oracle", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestRecordsEmptyDefault(t *testing.T) {
	r := NewRecords(NewMemory())
	ctx := context.Background()

	users, err := r.LoadUsers(ctx)
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Fatalf("LoadUsers = %#v, want empty non-nil slice", users)
	}
	tasks, err := r.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("LoadTasks = %#v, want empty non-nil slice", tasks)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	r := NewRecords(NewMemory())
	ctx := context.Background()

	users := []models.User{{Username: "alice", Email: "a@x.com", Password: "pw"}}
	tasks := []models.Task{
		{ID: 1, Title: "t1", Description: "d1", Status: models.StatusPending, Username: "alice"},
		{ID: 2, Title: "t2", Description: "d2", Status: models.StatusCompleted, Username: "bob"},
	}
	if err := r.SaveUsers(ctx, users); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	if err := r.SaveTasks(ctx, tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	gotUsers, err := r.LoadUsers(ctx)
	if err != nil || !reflect.DeepEqual(gotUsers, users) {
		t.Fatalf("LoadUsers = %#v, %v", gotUsers, err)
	}
	gotTasks, err := r.LoadTasks(ctx)
	if err != nil || !reflect.DeepEqual(gotTasks, tasks) {
		t.Fatalf("LoadTasks = %#v, %v", gotTasks, err)
	}
}

func TestRecordsCorruptValue(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()
	kv.Put(ctx, TasksKey, []byte("not json"))
	if _, err := NewRecords(kv).LoadTasks(ctx); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSessions(t *testing.T) {
	kv := NewMemory()
	s := NewSessions(kv)
	ctx := context.Background()

	sess, err := s.Load(ctx)
	if err != nil || sess != nil {
		t.Fatalf("Load on empty store = %v, %v", sess, err)
	}
	if err := s.Save(ctx, models.Session{Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	sess, err = s.Load(ctx)
	if err != nil || sess == nil || sess.Username != "alice" {
		t.Fatalf("Load = %v, %v", sess, err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if sess, _ := s.Load(ctx); sess != nil {
		t.Fatalf("Load after Clear = %v", sess)
	}

	kv.Put(ctx, SessionKey, []byte("null"))
	if sess, err := s.Load(ctx); err != nil || sess != nil {
		t.Fatalf("Load(null) = %v, %v", sess, err)
	}
}
