package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	var logs bytes.Buffer
	logging.SetOutput(&logs)
	t.Cleanup(func() { logging.SetOutput(io.Discard) })

	srv := httptest.NewServer(New(api.New(repo), Options{AllowedOrigins: []string{"http://localhost:5173"}}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestServer_ListEmpty(t *testing.T) {
	srv := setupServer(t)

	resp, body := do(t, "GET", srv.URL+TasksPath, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestServer_CreateAndGet(t *testing.T) {
	srv := setupServer(t)

	resp, body := do(t, "POST", srv.URL+TasksPath,
		`{"title":"Buy milk","description":"","status":"DONE","dueDate":null,"completed":false}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	created := decode(t, body)
	id, _ := created["id"].(string)
	assert.Len(t, id, 36)
	assert.Equal(t, "Buy milk", created["title"])
	assert.Equal(t, true, created["completed"], "completed follows status, not the request")
	assert.Nil(t, created["dueDate"])
	assert.NotEmpty(t, created["createdAt"])
	assert.Equal(t, created["createdAt"], created["updatedAt"])

	resp, body = do(t, "GET", srv.URL+TasksPath+"/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Buy milk", decode(t, body)["title"])

	resp, body = do(t, "GET", srv.URL+TasksPath, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestServer_CreateDefaultsStatus(t *testing.T) {
	srv := setupServer(t)

	resp, body := do(t, "POST", srv.URL+TasksPath, `{"title":"No status"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TODO", decode(t, body)["status"])
}

func TestServer_CreateRejectsBadInput(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty title", `{"title":"   "}`},
		{"missing title", `{"description":"x"}`},
		{"unknown status", `{"title":"x","status":"LATER"}`},
		{"title too long", `{"title":"` + strings.Repeat("a", 101) + `"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, "POST", srv.URL+TasksPath, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode(t, body)["message"])
		})
	}

	_, body := do(t, "GET", srv.URL+TasksPath, "")
	assert.JSONEq(t, `[]`, string(body))
}

func TestServer_UpdateReplacesTask(t *testing.T) {
	srv := setupServer(t)

	_, body := do(t, "POST", srv.URL+TasksPath, `{"title":"Draft","description":"v1","dueDate":"2025-05-01T10:00:00Z"}`)
	created := decode(t, body)
	id := created["id"].(string)

	time.Sleep(5 * time.Millisecond)
	resp, body := do(t, "PUT", srv.URL+TasksPath+"/"+id,
		`{"id":"ignored","title":"Final","description":"v2","status":"DONE","dueDate":null,"completed":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	updated := decode(t, body)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "Final", updated["title"])
	assert.Equal(t, "v2", updated["description"])
	assert.Equal(t, "DONE", updated["status"])
	assert.Equal(t, true, updated["completed"])
	assert.Nil(t, updated["dueDate"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
	assert.NotEqual(t, created["updatedAt"], updated["updatedAt"])
}

func TestServer_UnknownIDs(t *testing.T) {
	srv := setupServer(t)
	url := srv.URL + TasksPath + "/does-not-exist"

	resp, _ := do(t, "GET", url, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, "PUT", url, `{"title":"x","status":"TODO"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, "DELETE", url, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Delete(t *testing.T) {
	srv := setupServer(t)

	_, body := do(t, "POST", srv.URL+TasksPath, `{"title":"Temp"}`)
	id := decode(t, body)["id"].(string)

	resp, body := do(t, "DELETE", srv.URL+TasksPath+"/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = do(t, "GET", srv.URL+TasksPath+"/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := setupServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+TasksPath, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWriteError_LogsOnlySystemFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
		logged  bool
	}{
		{"bad body", errors.NewValidationError("invalid JSON body: EOF", nil), http.StatusBadRequest, "invalid JSON body: EOF", false},
		{"unknown id", errors.NewNotFoundError("task", "42"), http.StatusNotFound, "task not found: 42", false},
		{"storage", errors.NewDatabaseError("insert task", stderrors.New("disk full")), http.StatusInternalServerError, "A database error occurred. Please try again.", true},
		{"unclassified", stderrors.New("boom"), http.StatusInternalServerError, "boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logging.SetOutput(&logs)
			defer logging.SetOutput(io.Discard)

			rec := httptest.NewRecorder()
			writeError(rec, "create task", tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec.Body.Bytes())["message"])
			assert.Equal(t, tt.logged, strings.Contains(logs.String(), "create task: "))
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var logs bytes.Buffer
	logging.SetOutput(&logs)
	defer logging.SetOutput(io.Discard)

	h := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/tasks/7", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, logs.String(), "DELETE /api/tasks/7 418")
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	defer repo.Close()
	logging.SetOutput(io.Discard)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(api.New(repo), Options{}).Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + TasksPath)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
