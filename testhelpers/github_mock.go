package testhelpers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v62/github"
)

// RecordedRequest is a request received by the mock GitHub server
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	Body          map[string]any
}

// MockGitHubServerConfig configures the behavior of a mock GitHub server
type MockGitHubServerConfig struct {
	Owner string
	Repo  string
	// RejectDrafts answers draft creation with 422, like repositories without draft support
	RejectDrafts bool
	// CreateStatus forces an error status for every create request when non-zero
	CreateStatus int
	// UpdateStatus forces an error status for every update request when non-zero
	UpdateStatus int
	// NextNumber is the number assigned to the next created pull request
	NextNumber int

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:      "owner",
		Repo:       "repo",
		NextNumber: 1,
	}
}

// Requests returns a copy of the recorded requests
func (c *MockGitHubServerConfig) Requests() []RecordedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RecordedRequest(nil), c.requests...)
}

func (c *MockGitHubServerConfig) record(r *http.Request) (RecordedRequest, error) {
	rec := RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return rec, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec.Body); err != nil {
			return rec, err
		}
	}

	c.mu.Lock()
	c.requests = append(c.requests, rec)
	c.mu.Unlock()
	return rec, nil
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub pull request endpoints
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()
	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	basePath := "/repos/" + config.Owner + "/" + config.Repo + "/pulls"

	mux := http.NewServeMux()
	mux.HandleFunc(basePath, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		rec, err := config.record(r)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
			return
		}

		draft, _ := rec.Body["draft"].(bool)
		switch {
		case config.CreateStatus != 0:
			writeGitHubError(w, config.CreateStatus, "Server Error")
			return
		case draft && config.RejectDrafts:
			writeGitHubError(w, http.StatusUnprocessableEntity, "Validation Failed")
			return
		}

		config.mu.Lock()
		number := config.NextNumber
		config.NextNumber++
		config.mu.Unlock()

		title, _ := rec.Body["title"].(string)
		head, _ := rec.Body["head"].(string)
		base, _ := rec.Body["base"].(string)
		pr := &github.PullRequest{
			Number:  github.Int(number),
			URL:     github.String("http://" + r.Host + basePath + "/" + strconv.Itoa(number)),
			HTMLURL: github.String("https://github.com/" + config.Owner + "/" + config.Repo + "/pull/" + strconv.Itoa(number)),
			Title:   github.String(title),
			Draft:   github.Bool(draft),
			Head:    &github.PullRequestBranch{Ref: github.String(head)},
			Base:    &github.PullRequestBranch{Ref: github.String(base)},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(pr)
	})

	mux.HandleFunc(basePath+"/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		number, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, basePath+"/"))
		if err != nil {
			http.Error(w, "Invalid PR number", http.StatusBadRequest)
			return
		}
		rec, err := config.record(r)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
			return
		}
		if config.UpdateStatus != 0 {
			writeGitHubError(w, config.UpdateStatus, "Not Found")
			return
		}

		head, _ := rec.Body["head"].(string)
		base, _ := rec.Body["base"].(string)
		pr := &github.PullRequest{
			Number: github.Int(number),
			URL:    github.String("http://" + r.Host + r.URL.Path),
			Head:   &github.PullRequestBranch{Ref: github.String(head)},
			Base:   &github.PullRequestBranch{Ref: github.String(base)},
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(pr)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeGitHubError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": message})
}
