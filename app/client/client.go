// Package client talks to the task backend over HTTP-shaped calls. Requests
// may go to a real server or be intercepted in-process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"taskboard/app/models"
)

// inProcessURL is the base URL used when calls never leave the process.
const inProcessURL = "http://taskboard.local"

// Client calls the six backend endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the backend at baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// NewInProcess returns a Client whose requests are served by handler directly.
func NewInProcess(handler http.Handler) *Client {
	return New(inProcessURL, &http.Client{Transport: &InterceptTransport{Handler: handler}})
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/register", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login checks credentials and returns the authenticated username.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

// ListTasks returns the tasks owned by username.
func (c *Client) ListTasks(ctx context.Context, username string) ([]models.Task, error) {
	tasks := []models.Task{}
	path := "/tasks?" + url.Values{"username": {username}}.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask stores a new task and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, "/tasks", in, &task)
	return task, err
}

// UpdateTask replaces task id with in.
func (c *Client) UpdateTask(ctx context.Context, id int, in models.TaskInput) (models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPut, "/tasks/"+strconv.Itoa(id), in, &task)
	return task, err
}

// DeleteTask removes task id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	var resp models.MessageResponse
	return c.do(ctx, http.MethodDelete, "/tasks/"+strconv.Itoa(id), nil, &resp)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return transportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg models.MessageResponse
		if err := json.Unmarshal(data, &msg); err != nil {
			return &Error{Kind: Transport, Status: resp.StatusCode, Err: fmt.Errorf("unexpected %s response: %w", resp.Status, err)}
		}
		return &Error{Kind: kindFor(resp.StatusCode), Status: resp.StatusCode, Message: msg.Message}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: Transport, Status: resp.StatusCode, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}
