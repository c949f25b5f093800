package words

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hagxwon/internal/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second)
}

func TestListWords(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/words" {
			t.Errorf("path = %v, want /words", r.URL.Path)
		}
		if got := r.URL.Query().Get("skip"); got != "20" {
			t.Errorf("skip = %v, want 20", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %v, want 10", got)
		}
		json.NewEncoder(w).Encode([]models.Word{
			{ID: 1, Korean: "사과", English: "apple"},
			{ID: 2, Korean: "바다", English: "sea"},
		})
	})

	words, err := client.ListWords(context.Background(), 20, 10)
	if err != nil {
		t.Fatalf("ListWords() error = %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("word count = %d, want 2", len(words))
	}
	if words[0].Korean != "사과" {
		t.Errorf("first word = %v, want 사과", words[0].Korean)
	}
}

func TestGetWordUpstreamError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.GetWord(context.Background(), 99)
	if err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestSemanticSearchSendsQuery(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %v, want POST", r.Method)
		}
		var body struct {
			Query string `json:"query"`
			Limit int    `json:"limit"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body.Query != "ocean" || body.Limit != 5 {
			t.Errorf("body = %+v, want query=ocean limit=5", body)
		}
		json.NewEncoder(w).Encode([]models.WordSearchResult{
			{Word: models.Word{ID: 2, Korean: "바다"}, Similarity: 0.91},
		})
	})

	results, err := client.SemanticSearch(context.Background(), "ocean", 5)
	if err != nil {
		t.Fatalf("SemanticSearch() error = %v", err)
	}
	if len(results) != 1 || results[0].Similarity != 0.91 {
		t.Errorf("results = %+v, want one hit with similarity 0.91", results)
	}
}

func TestPracticeContent(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/words/7/practice" {
			t.Errorf("path = %v, want /words/7/practice", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.PracticeContent{
			WordID:       7,
			PracticeType: "sentence",
			Prompt:       "Fill in the blank",
		})
	})

	content, err := client.PracticeContent(context.Background(), 7, "sentence")
	if err != nil {
		t.Fatalf("PracticeContent() error = %v", err)
	}
	if content.WordID != 7 || content.PracticeType != "sentence" {
		t.Errorf("content = %+v, want wordID=7 type=sentence", content)
	}
}

func TestPingUnhealthy(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %v, want /health", r.URL.Path)
		}
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected an error for an unhealthy upstream")
	}
}

func TestPingCancelledContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
