// Package client implements a thin HTTP client for the task-list API.
// A cookie jar keeps the session cookie across calls, so login state
// survives for the lifetime of the Client.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/AleLoredo/TasksAPI/internal/models"
)

const (
	apiRegister = "/api/registro"
	apiLogin    = "/api/login"
	apiLogout   = "/api/logout"
	apiStatus   = "/api/status"
	apiTasks    = "/api/tareas"
)

// Client talks to the task-list API on behalf of one interactive user.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// do performs one JSON round trip. The response body, when present, is
// decoded into out; the HTTP status is always returned.
func (c *Client) do(method, path string, payload, out any) (int, error) {
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if out != nil {
		// Error payloads may not match out; leave it zeroed in that case.
		_ = json.NewDecoder(res.Body).Decode(out)
	}
	return res.StatusCode, nil
}

// Register creates a new account.
func (c *Client) Register(usuario, contrasena string) (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodPost, apiRegister, map[string]string{
		"usuario":    usuario,
		"contraseña": contrasena,
	}, &out)
	return status, out, err
}

// Login authenticates and stores the session cookie in the jar.
func (c *Client) Login(usuario, contrasena string, recordar bool) (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodPost, apiLogin, map[string]any{
		"usuario":    usuario,
		"contraseña": contrasena,
		"recordar":   recordar,
	}, &out)
	return status, out, err
}

// Logout destroys the server-side session.
func (c *Client) Logout() (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodPost, apiLogout, nil, &out)
	return status, out, err
}

// Status reports the authenticated user of the current session.
func (c *Client) Status() (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodGet, apiStatus, nil, &out)
	return status, out, err
}

// ListTasks returns the session user's tasks.
func (c *Client) ListTasks() (int, []models.Task, error) {
	var out []models.Task
	status, err := c.do(http.MethodGet, apiTasks, nil, &out)
	return status, out, err
}

// AddTask creates a task with the given description.
func (c *Client) AddTask(descripcion string) (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodPost, apiTasks, map[string]string{
		"descripcion": descripcion,
	}, &out)
	return status, out, err
}

// DeleteTask removes a task by id.
func (c *Client) DeleteTask(id int64) (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodDelete, fmt.Sprintf("%s/%d", apiTasks, id), nil, &out)
	return status, out, err
}

// SetTaskCompleted updates a task's completed flag.
func (c *Client) SetTaskCompleted(id int64, completed bool) (int, map[string]any, error) {
	var out map[string]any
	status, err := c.do(http.MethodPut, fmt.Sprintf("%s/%d", apiTasks, id), map[string]bool{
		"completada": completed,
	}, &out)
	return status, out, err
}
