package domain

// Product is a single catalog record. Records are loaded once at startup and
// never mutated; retrieval results reference them by value copy of this struct.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
}

// Review is one customer review attached to a summarize-reviews request.
type Review struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
