package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/neer47/task-manager/db"
	"github.com/neer47/task-manager/internal/auth"
	"github.com/neer47/task-manager/internal/handlers"
	"github.com/neer47/task-manager/internal/models"
	"github.com/neer47/task-manager/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubSummarizer replaces the OpenAI client in tests.
type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func setupServer(t *testing.T, summarizer *stubSummarizer) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.User{}, &models.Task{}))
	db.DB = testDB

	require.NoError(t, auth.Init("test-secret"))

	if summarizer == nil {
		summarizer = &stubSummarizer{summary: "A short summary."}
	}

	return router.NewRouter(handlers.NewTaskHandler(summarizer))
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, r http.Handler, name, email, password string) string {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// createTask creates a task through the API and returns its id.
func createTask(t *testing.T, r http.Handler, token, title, description, dueDate, priority string) float64 {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/tasks", token, gin.H{
		"title":       title,
		"description": description,
		"dueDate":     dueDate,
		"priority":    priority,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	id, ok := body["id"].(float64)
	require.True(t, ok)
	return id
}
