// Package sqlite persists the catalog's embedding vectors in a single sqlite
// file, one row per catalog position. The service loads every vector into
// memory at startup and answers queries with an exact squared-L2 scan; the
// file is never written after load, so concurrent reads need no locking.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
)

// Index is the in-memory view of a built index file. Position i holds the
// vector for the i-th catalog record.
type Index struct {
	vectors   [][]float32
	dimension int
	model     string
}

// Open loads an index file built by a Writer. Rows must cover the positions
// 0..n-1 without gaps.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT position, vector, dimension, model FROM embeddings ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	defer rows.Close()

	idx := &Index{}
	for rows.Next() {
		var position, dimension int
		var blob []byte
		var model string
		if err := rows.Scan(&position, &blob, &dimension, &model); err != nil {
			return nil, fmt.Errorf("scan index row: %w", err)
		}
		if position != len(idx.vectors) {
			return nil, fmt.Errorf("index has a gap at position %d", len(idx.vectors))
		}

		vector, err := blobToVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode vector at position %d: %w", position, err)
		}
		if len(vector) != dimension {
			return nil, fmt.Errorf("vector at position %d: expected dimension %d, got %d", position, dimension, len(vector))
		}
		if idx.dimension == 0 {
			idx.dimension = dimension
			idx.model = model
		} else if dimension != idx.dimension {
			return nil, fmt.Errorf("vector at position %d: mixed dimensions %d and %d", position, idx.dimension, dimension)
		}
		idx.vectors = append(idx.vectors, vector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate index rows: %w", err)
	}
	return idx, nil
}

func (idx *Index) Len() int        { return len(idx.vectors) }
func (idx *Index) Dimension() int  { return idx.dimension }
func (idx *Index) Model() string   { return idx.model }

// Search returns the topK positions closest to the query vector, ascending
// by squared L2 distance. topK beyond the stored count returns everything.
func (idx *Index) Search(ctx context.Context, queryVector []float32, topK int) ([]domain.IndexMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}
	if idx.dimension != 0 && len(queryVector) != idx.dimension {
		return nil, fmt.Errorf("query vector dimension %d, index dimension %d", len(queryVector), idx.dimension)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	matches := make([]domain.IndexMatch, len(idx.vectors))
	for i, vector := range idx.vectors {
		matches[i] = domain.IndexMatch{
			Position: i,
			Distance: squaredL2(queryVector, vector),
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func vectorToBlob(vector []float32) []byte {
	blob := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

func blobToVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(blob))
	}
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vector, nil
}
