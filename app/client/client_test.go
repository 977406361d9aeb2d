package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/app/logging"
	"taskboard/app/models"
	"taskboard/app/routes"
	"taskboard/app/store"
)

func newInProcess(t *testing.T) *Client {
	t.Helper()
	router, err := routes.NewBackend(context.Background(), store.NewMemory(), logging.Nop())
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	return NewInProcess(router)
}

func TestInProcessRoundTrip(t *testing.T) {
	c := newInProcess(t)
	ctx := context.Background()

	msg, err := c.Register(ctx, models.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "pw"})
	if err != nil || msg != "Registered successfully" {
		t.Fatalf("Register = %q, %v", msg, err)
	}
	_, err = c.Register(ctx, models.RegisterRequest{Username: "alice", Email: "b@x.com", Password: "pw"})
	if !IsKind(err, Conflict) || err.Error() != "User already exists" {
		t.Fatalf("duplicate Register err = %v", err)
	}
	if _, err := c.Login(ctx, models.LoginRequest{Username: "alice", Password: "nope"}); !IsKind(err, Unauthorized) {
		t.Fatalf("bad Login err = %v", err)
	}
	name, err := c.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw"})
	if err != nil || name != "alice" {
		t.Fatalf("Login = %q, %v", name, err)
	}

	in := models.TaskInput{Title: "t1", Description: "d1", Status: models.StatusPending, Username: "alice"}
	created, err := c.CreateTask(ctx, in)
	if err != nil || created.ID != 1 || created.Input() != in {
		t.Fatalf("CreateTask = %+v, %v", created, err)
	}
	tasks, err := c.ListTasks(ctx, "alice")
	if err != nil || len(tasks) != 1 || tasks[0] != created {
		t.Fatalf("ListTasks = %+v, %v", tasks, err)
	}
	in.Status = models.StatusCompleted
	updated, err := c.UpdateTask(ctx, created.ID, in)
	if err != nil || updated.Status != models.StatusCompleted {
		t.Fatalf("UpdateTask = %+v, %v", updated, err)
	}
	if err := c.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, err = c.ListTasks(ctx, "alice")
	if err != nil || len(tasks) != 0 {
		t.Fatalf("ListTasks after delete = %+v, %v", tasks, err)
	}
}

func TestListTasksEscapesUsername(t *testing.T) {
	var got string
	c := NewInProcess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("username")
		w.Write([]byte("[]"))
	}))
	if _, err := c.ListTasks(context.Background(), "a&b c"); err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if got != "a&b c" {
		t.Fatalf("server saw username %q", got)
	}
}

func TestMalformedResponsesAreTransportFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad success body", http.StatusOK, "<html>"},
		{"bad error body", http.StatusBadGateway, "upstream down"},
	}
	for _, tt := range tests {
		c := NewInProcess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		}))
		_, err := c.ListTasks(context.Background(), "alice")
		if !IsKind(err, Transport) {
			t.Errorf("%s: err = %v, want transport failure", tt.name, err)
		}
	}
}

func TestServerErrorKind(t *testing.T) {
	c := NewInProcess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"disk full"}`))
	}))
	err := c.DeleteTask(context.Background(), 1)
	var e *Error
	if !errors.As(err, &e) || e.Kind != Server || e.Status != 500 || e.Message != "disk full" {
		t.Fatalf("err = %#v", err)
	}
}

func TestRealServer(t *testing.T) {
	router, err := routes.NewBackend(context.Background(), store.NewMemory(), logging.Nop())
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	srv := httptest.NewServer(router)
	defer srv.Close()

	c := New(srv.URL+"/", srv.Client())
	if _, err := c.Register(context.Background(), models.RegisterRequest{Username: "bob", Email: "b@x.com", Password: "pw"}); err != nil {
		t.Fatalf("Register over network: %v", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Login(context.Background(), models.LoginRequest{Username: "a", Password: "b"})
	if !IsKind(err, Transport) {
		t.Fatalf("err = %v, want transport failure", err)
	}
}
