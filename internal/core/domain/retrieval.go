package domain

// IndexMatch is one hit from the vector index: the catalog position of the
// matched record and its squared L2 distance to the query vector.
type IndexMatch struct {
	Position int
	Distance float32
}

// RetrievedProduct pairs a catalog record with its distance to the query.
type RetrievedProduct struct {
	Product  Product `json:"product"`
	Distance float32 `json:"distance"`
}

// ParsedAnswer is one structured record extracted from the smart-search
// completion, or the unstructured fallback when no structure was found.
type ParsedAnswer struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// SearchResult is the smart-search response payload. Results is never empty.
type SearchResult struct {
	Query   string         `json:"query"`
	Results []ParsedAnswer `json:"results"`
}

// ReviewSummary reports the generated summary and the count of reviews the
// caller submitted, which may exceed the number actually summarized.
type ReviewSummary struct {
	Summary     string `json:"summary"`
	ReviewCount int    `json:"reviewCount"`
}
