package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
)

// testPrompt is a fixed Prompt for client tests
type testPrompt struct {
	system string
	user   string
}

func (p testPrompt) Text() string {
	return p.user
}

func (p testPrompt) Messages() []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage(p.system),
		schema.UserMessage(p.user),
	}
}

var samplePrompt = testPrompt{
	system: "You write Conventional Commits.",
	user:   "diff --git a/main.go b/main.go\n+fmt.Println(\"hi\")",
}

// recordedRequest is what a fake backend saw
type recordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]interface{}
}

// fakeBackend serves a canned reply and counts calls
type fakeBackend struct {
	server *httptest.Server
	calls  atomic.Int32

	mu   sync.Mutex
	last recordedRequest
}

func newFakeBackend(t *testing.T, status int, reply string) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.calls.Add(1)

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		body := map[string]interface{}{}
		assert.NoError(t, json.Unmarshal(raw, &body))

		fb.mu.Lock()
		fb.last = recordedRequest{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body}
		fb.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) URL() string {
	return fb.server.URL
}

// Last returns the most recent request
func (fb *fakeBackend) Last() recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.last
}

func (fb *fakeBackend) Calls() int {
	return int(fb.calls.Load())
}
