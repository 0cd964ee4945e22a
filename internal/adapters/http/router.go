// Package httpadapter exposes the RAG pipeline over JSON HTTP endpoints.
// Validation failures are answered here; everything else is delegated to the
// use cases and mapped back to a status code.
package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
	"github.com/shopgrid/catalog-assistant/internal/core/ports"
	"github.com/shopgrid/catalog-assistant/internal/observability/metrics"
)

const serviceName = "catalog-assistant"

type Router struct {
	searcher    ports.ProductSearcher
	recommender ports.ProductRecommender
	answerer    ports.ProductAnswerer
	reviews     ports.ReviewSummarizer
	comparer    ports.ProductComparer
	guide       ports.ShoppingGuide
	metrics     *metrics.ServerMetrics
}

func NewRouter(
	searcher ports.ProductSearcher,
	recommender ports.ProductRecommender,
	answerer ports.ProductAnswerer,
	reviews ports.ReviewSummarizer,
	comparer ports.ProductComparer,
	guide ports.ShoppingGuide,
	serverMetrics *metrics.ServerMetrics,
) *Router {
	return &Router{
		searcher:    searcher,
		recommender: recommender,
		answerer:    answerer,
		reviews:     reviews,
		comparer:    comparer,
		guide:       guide,
		metrics:     serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.health)
	mux.HandleFunc("/search", rt.search)
	mux.HandleFunc("/recommend", rt.recommend)
	mux.HandleFunc("/recommendations", rt.recommendations)
	mux.HandleFunc("/qa", rt.qa)
	mux.HandleFunc("/summarize-reviews", rt.summarizeReviews)
	mux.HandleFunc("/compare", rt.compare)
	mux.HandleFunc("/guide", rt.shoppingGuide)

	var handler http.Handler = mux
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "catalog assistant running"})
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodePost(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := rt.searcher.Search(r.Context(), req.Query)
	if err != nil {
		rt.fail(w, r, "search", err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordRAGRequest(serviceName, "search", time.Since(start))
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) recommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing query"})
		return
	}

	results, err := rt.recommender.Summarize(r.Context(), req.Query)
	if err != nil {
		rt.fail(w, r, "recommend", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"results": results})
}

func (rt *Router) recommendations(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context string `json:"context"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Context) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing context"})
		return
	}

	recommendations, err := rt.recommender.RecommendFromContext(r.Context(), req.Context)
	if err != nil {
		rt.fail(w, r, "recommendations", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recommendations": recommendations})
}

func (rt *Router) qa(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
		Product  string `json:"product"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing question"})
		return
	}

	answer, err := rt.answerer.Answer(r.Context(), req.Question, req.Product)
	if err != nil {
		rt.fail(w, r, "qa", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (rt *Router) summarizeReviews(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductName string          `json:"productName"`
		Reviews     []domain.Review `json:"reviews"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProductName) == "" || len(req.Reviews) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing productName or reviews"})
		return
	}

	summary, err := rt.reviews.SummarizeReviews(r.Context(), req.ProductName, req.Reviews)
	if err != nil {
		rt.fail(w, r, "summarize-reviews", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (rt *Router) compare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductA string `json:"productA"`
		ProductB string `json:"productB"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.ProductA) == "" || strings.TrimSpace(req.ProductB) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing productA or productB"})
		return
	}

	comparison, err := rt.comparer.Compare(r.Context(), req.ProductA, req.ProductB)
	if err != nil {
		rt.fail(w, r, "compare", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"comparison": comparison})
}

func (rt *Router) shoppingGuide(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Context string `json:"context"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Context) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing context"})
		return
	}

	guide, err := rt.guide.Guide(r.Context(), req.Context)
	if err != nil {
		rt.fail(w, r, "guide", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"guide": guide})
}

// fail logs the error, records provider failures, and answers with the
// mapped status and the error's message.
func (rt *Router) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	slog.Error("request_failed",
		"request_id", requestIDFromContext(r.Context()),
		"endpoint", endpoint,
		"error", err,
	)
	if rt.metrics != nil && domain.IsKind(err, domain.ErrProvider) {
		rt.metrics.RecordProviderError(serviceName, endpoint)
	}
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func decodePost(w http.ResponseWriter, r *http.Request, out any) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
