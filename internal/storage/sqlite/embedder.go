// ABOUTME: Internal default embedder used when no provider vector is supplied
// ABOUTME: Deterministic hashed bag-of-words with L2 normalization
package sqlite

import (
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// DefaultDimension is the dimensionality of internally computed vectors
const DefaultDimension = 384

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// defaultEmbedder hashes tokens into a fixed number of buckets and
// weights them by term frequency. The same text always produces the
// same vector, so a chunk queried with its own text is a perfect match.
type defaultEmbedder struct {
	dimension int
}

func newDefaultEmbedder() *defaultEmbedder {
	return &defaultEmbedder{dimension: DefaultDimension}
}

// Dimension returns the dimensionality of produced vectors
func (e *defaultEmbedder) Dimension() int {
	return e.dimension
}

// Embed computes the hashed bag-of-words vector for text.
// Text with no tokens yields the zero vector.
func (e *defaultEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dimension)

	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return vec
	}

	for _, token := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		idx := int(h.Sum32()) % e.dimension
		if idx < 0 {
			idx += e.dimension
		}
		vec[idx] += 1.0
	}

	// L2 normalize so cosine similarity reduces to a dot product
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec
}
