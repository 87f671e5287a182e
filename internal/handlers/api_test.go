package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPI_RetrievePosts_MissingUsername(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest("GET", "/api/posts/retrieve", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}

	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["error"] != "Error #001: Invalid parameters" {
		t.Errorf("error: got %q", out["error"])
	}
}

func TestAPI_RetrievePosts_UnknownUsername(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest("GET", "/api/posts/retrieve?username=ghost", nil))
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["error"] != "Error #001: Invalid parameters" {
		t.Errorf("error: got %q", out["error"])
	}
}

func TestAPI_RetrievePosts_EmptyList(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "password1")

	rr := env.do(httptest.NewRequest("GET", "/api/posts/retrieve?username=alice", nil))

	var out struct {
		Success  string            `json:"success"`
		Username string            `json:"username"`
		Posts    []json.RawMessage `json:"posts"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success != "Query successful for alice" || out.Username != "alice" {
		t.Errorf("unexpected response: %+v", out)
	}
	if out.Posts == nil {
		t.Error("posts encoded as null, want []")
	}
	if len(out.Posts) != 0 {
		t.Errorf("posts: got %d, want 0", len(out.Posts))
	}
}

func TestAPI_SaveThenRetrieve(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "alice@example.com", "password1")

	saveRR := env.do(httptest.NewRequest("POST", "/api/posts/save?username=alice&tweet=hello", nil))
	if saveRR.Code != http.StatusOK {
		t.Fatalf("save status: got %d, want 200", saveRR.Code)
	}

	var saved struct {
		Success  string `json:"success"`
		Username string `json:"username"`
		PostData struct {
			PostID     uint   `json:"post_id"`
			UserID     uint   `json:"user_id"`
			Tweet      string `json:"tweet"`
			DatePosted string `json:"date_posted"`
		} `json:"post_data"`
	}
	if err := json.NewDecoder(saveRR.Body).Decode(&saved); err != nil {
		t.Fatalf("decode save: %v", err)
	}
	if saved.Success != "Tweet posted." || saved.Username != "alice" {
		t.Errorf("unexpected save response: %+v", saved)
	}
	if saved.PostData.PostID == 0 || saved.PostData.UserID != alice.ID {
		t.Errorf("unexpected post_data: %+v", saved.PostData)
	}
	if saved.PostData.Tweet != "hello" || saved.PostData.DatePosted == "" {
		t.Errorf("unexpected post_data: %+v", saved.PostData)
	}

	retrRR := env.do(httptest.NewRequest("GET", "/api/posts/retrieve?username=alice", nil))
	var out struct {
		Posts []struct {
			PostID uint   `json:"post_id"`
			UserID uint   `json:"user_id"`
			Tweet  string `json:"tweet"`
		} `json:"posts"`
	}
	if err := json.NewDecoder(retrRR.Body).Decode(&out); err != nil {
		t.Fatalf("decode retrieve: %v", err)
	}
	if len(out.Posts) != 1 {
		t.Fatalf("posts: got %d, want 1", len(out.Posts))
	}
	if out.Posts[0].Tweet != "hello" || out.Posts[0].PostID != saved.PostData.PostID {
		t.Errorf("unexpected post: %+v", out.Posts[0])
	}
}

func TestAPI_SavePost_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(httptest.NewRequest("POST", "/api/posts/save?username=ghost&tweet=x", nil))
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["error"] != "Error #002: Invalid Parameters" {
		t.Errorf("error: got %q", out["error"])
	}

	n, err := env.posts.Count(t.Context())
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if n != 0 {
		t.Errorf("posts created: got %d, want 0", n)
	}
}

func TestAPI_SavePost_EmptyTweetAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "alice", "alice@example.com", "password1")

	// No tweet parameter at all: still persisted as-is.
	rr := env.do(httptest.NewRequest("POST", "/api/posts/save?username=alice", nil))

	var out struct {
		Success  string `json:"success"`
		PostData struct {
			Tweet string `json:"tweet"`
		} `json:"post_data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success != "Tweet posted." || out.PostData.Tweet != "" {
		t.Errorf("unexpected response: %+v", out)
	}
}
