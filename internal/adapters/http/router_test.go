package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
)

type stubServices struct {
	searchResult *domain.SearchResult
	text         string
	summary      *domain.ReviewSummary
	err          error

	lastQuery    string
	lastQuestion string
	lastProduct  string
}

func (s *stubServices) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	s.lastQuery = query
	return s.searchResult, s.err
}

func (s *stubServices) Summarize(ctx context.Context, query string) (string, error) {
	s.lastQuery = query
	return s.text, s.err
}

func (s *stubServices) RecommendFromContext(ctx context.Context, userContext string) (string, error) {
	s.lastQuery = userContext
	return s.text, s.err
}

func (s *stubServices) Answer(ctx context.Context, question, productName string) (string, error) {
	s.lastQuestion = question
	s.lastProduct = productName
	return s.text, s.err
}

func (s *stubServices) SummarizeReviews(ctx context.Context, productName string, reviews []domain.Review) (*domain.ReviewSummary, error) {
	s.lastProduct = productName
	return s.summary, s.err
}

func (s *stubServices) Compare(ctx context.Context, productA, productB string) (string, error) {
	return s.text, s.err
}

func (s *stubServices) Guide(ctx context.Context, userContext string) (string, error) {
	s.lastQuery = userContext
	return s.text, s.err
}

func newTestServer(stub *stubServices) *httptest.Server {
	router := NewRouter(stub, stub, stub, stub, stub, stub, nil)
	return httptest.NewServer(router.Handler())
}

func postJSONBody(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("expected a generated request id header")
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["status"] == "" {
		t.Error("health payload missing status")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d", resp.StatusCode)
	}
}

func TestSearchEndpoint(t *testing.T) {
	stub := &stubServices{searchResult: &domain.SearchResult{
		Query: "quiet mouse",
		Results: []domain.ParsedAnswer{
			{Name: "Wireless Mouse", Category: "Electronics", Summary: "silent clicks"},
		},
	}}
	server := newTestServer(stub)
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/search", `{"query": "quiet mouse"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search status = %d", resp.StatusCode)
	}
	if stub.lastQuery != "quiet mouse" {
		t.Errorf("query not forwarded: %q", stub.lastQuery)
	}
	if payload["query"] != "quiet mouse" {
		t.Errorf("response missing query echo: %v", payload)
	}
	results, ok := payload["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("unexpected results payload: %v", payload["results"])
	}
}

func TestSearchMethodNotAllowed(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/search")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /search status = %d", resp.StatusCode)
	}
}

func TestRecommendRequiresQuery(t *testing.T) {
	server := newTestServer(&stubServices{text: "unused"})
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/recommend", `{"query": "  "}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank query status = %d", resp.StatusCode)
	}
	if payload["error"] != "Missing query" {
		t.Errorf("unexpected error payload: %v", payload)
	}
}

func TestQARequiresQuestion(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/qa", `{"question": "", "product": "mouse"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank question status = %d", resp.StatusCode)
	}
	if payload["error"] == "" {
		t.Error("error payload missing message")
	}
}

func TestQAForwardsQuestionAndProduct(t *testing.T) {
	stub := &stubServices{text: "18 months on one battery."}
	server := newTestServer(stub)
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/qa",
		`{"question": "How long does the battery last?", "product": "mouse"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("qa status = %d", resp.StatusCode)
	}
	if stub.lastQuestion != "How long does the battery last?" || stub.lastProduct != "mouse" {
		t.Errorf("inputs not forwarded: %q %q", stub.lastQuestion, stub.lastProduct)
	}
	if payload["answer"] != "18 months on one battery." {
		t.Errorf("unexpected answer payload: %v", payload)
	}
}

func TestSummarizeReviewsValidation(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, _ := postJSONBody(t, server.URL+"/summarize-reviews", `{"productName": "Mouse", "reviews": []}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty reviews status = %d", resp.StatusCode)
	}

	resp, _ = postJSONBody(t, server.URL+"/summarize-reviews",
		`{"productName": "", "reviews": [{"rating": 5, "comment": "great"}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing product name status = %d", resp.StatusCode)
	}
}

func TestSummarizeReviewsEndpoint(t *testing.T) {
	stub := &stubServices{summary: &domain.ReviewSummary{Summary: "Mostly positive.", ReviewCount: 2}}
	server := newTestServer(stub)
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/summarize-reviews",
		`{"productName": "Mouse", "reviews": [{"rating": 5, "comment": "great"}, {"rating": 3, "comment": "ok"}]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if payload["summary"] != "Mostly positive." {
		t.Errorf("unexpected summary payload: %v", payload)
	}
	if payload["reviewCount"] != float64(2) {
		t.Errorf("unexpected review count: %v", payload["reviewCount"])
	}
}

func TestProviderFailureMapsToBadGateway(t *testing.T) {
	stub := &stubServices{err: domain.WrapError(domain.ErrProvider, "chat completion", context.DeadlineExceeded)}
	server := newTestServer(stub)
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/search", `{"query": "anything"}`)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("provider failure status = %d", resp.StatusCode)
	}
	if payload["error"] == "" {
		t.Error("error payload missing message")
	}
}

func TestInvalidJSONIsBadRequest(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	resp, _ := postJSONBody(t, server.URL+"/search", `{broken`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid json status = %d", resp.StatusCode)
	}
}

func TestCompareAndGuideEndpoints(t *testing.T) {
	stub := &stubServices{text: "verdict"}
	server := newTestServer(stub)
	defer server.Close()

	resp, payload := postJSONBody(t, server.URL+"/compare",
		`{"productA": "mouse", "productB": "keyboard"}`)
	if resp.StatusCode != http.StatusOK || payload["comparison"] != "verdict" {
		t.Errorf("compare: status %d payload %v", resp.StatusCode, payload)
	}

	resp, payload = postJSONBody(t, server.URL+"/guide", `{"context": "reading corner"}`)
	if resp.StatusCode != http.StatusOK || payload["guide"] != "verdict" {
		t.Errorf("guide: status %d payload %v", resp.StatusCode, payload)
	}

	resp, payload = postJSONBody(t, server.URL+"/recommendations", `{"context": ""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank recommendations context status = %d", resp.StatusCode)
	}
	if payload["error"] != "Missing context" {
		t.Errorf("unexpected error payload: %v", payload)
	}
}

func TestRequestIDPassThrough(t *testing.T) {
	server := newTestServer(&stubServices{})
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Request-ID", "caller-supplied-id")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "caller-supplied-id" {
		t.Errorf("caller request id not echoed, got %q", got)
	}
}
