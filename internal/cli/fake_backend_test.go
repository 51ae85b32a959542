package cli

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"codeberg.org/clambin/go-common/testutils"
	"github.com/clambin/plex-watch-history/internal/plextv"
)

const testToken = "12345678901234567890"

// fakeBackend serves the three endpoints the command needs: legacy sign-in,
// /api/v2/user and the community GraphQL endpoint (mounted at /graphql).
type fakeBackend struct {
	http.Handler
	entries  []map[string]any
	removed  []string
	failures map[string]bool
	lock     sync.Mutex
}

func newBackend(entries []map[string]any) *fakeBackend {
	f := fakeBackend{entries: entries}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/sign_in.xml", f.handleSignIn)
	mux.Handle("GET /api/v2/user", withToken(testToken, &testutils.TestServer{Responses: map[string]testutils.PathResponse{
		"/api/v2/user": {http.MethodGet: testutils.Response{
			Body:       plextv.User{Id: 475814, Uuid: "35c1a6fd2b630943", Username: "user"},
			StatusCode: http.StatusOK,
		}},
	}}))
	mux.HandleFunc("POST /graphql", f.handleGraphQL)
	f.Handler = mux
	return &f
}

func startBackend(t *testing.T, entries []map[string]any) (*fakeBackend, []string) {
	t.Helper()
	f := newBackend(entries)
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	return f, []string{"--plextv-url", ts.URL, "--community-url", ts.URL + "/graphql"}
}

func withToken(token string, next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Plex-Token") != token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{ "errors": [ { "code": 1001, "message": "Unauthorized", "status": 401 } ] }`))
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (f *fakeBackend) handleSignIn(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	vals, _ := url.ParseQuery(string(body))
	if vals.Get("user[login]") != "user" || vals.Get("user[password]") != "pass" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{ "error": "invalid login/password" }`))
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = xml.NewEncoder(w).Encode(struct {
		XMLName             xml.Name `xml:"user"`
		AuthenticationToken string   `xml:"authenticationToken,attr"`
	}{AuthenticationToken: testToken})
}

func (f *fakeBackend) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Plex-Token") != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{ "errors": [ { "code": 1001, "message": "Unauthorized", "status": 401 } ] }`))
		return
	}
	var request struct {
		Variables     map[string]any `json:"variables"`
		OperationName string         `json:"operationName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	switch request.OperationName {
	case "GetWatchHistoryHub":
		entries := f.entries
		if entries == nil {
			entries = []map[string]any{}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"user": map[string]any{
					"watchHistory": map[string]any{
						"nodes":    entries,
						"pageInfo": map[string]any{"hasNextPage": false, "endCursor": ""},
					},
				},
			},
		})
	case "removeActivity":
		input, _ := request.Variables["input"].(map[string]any)
		id, _ := input["id"].(string)
		if f.failures[id] {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{"removeActivity": false},
			})
			return
		}
		f.removed = append(f.removed, id)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"removeActivity": true},
		})
	default:
		http.Error(w, "unknown operation "+request.OperationName, http.StatusBadRequest)
	}
}

func (f *fakeBackend) removedEntries() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.removed
}

var testEntries = []map[string]any{
	{
		"id":   "entry-0",
		"date": "2024-01-01T16:23:42Z",
		"metadataItem": map[string]any{
			"id": "item-0", "title": "The Martian", "type": "MOVIE", "year": 2015,
		},
	},
	{
		"id":   "entry-1",
		"date": "2024-01-02T08:00:00Z",
		"metadataItem": map[string]any{
			"id": "item-1", "title": "Dulcinea", "type": "EPISODE", "index": 1,
			"parent":      map[string]any{"title": "Season 1", "index": 1, "type": "SEASON"},
			"grandparent": map[string]any{"title": "The Expanse", "type": "SHOW"},
		},
	},
}
