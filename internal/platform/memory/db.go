package memory

import (
	"sort"
	"sync"

	"github.com/ayanpanda-github/QnA-AsyncLLM/internal/domain"
)

// DB holds the tables shared by the memory stores.
type DB struct {
	mu        sync.RWMutex
	documents map[int64]*domain.Document
	questions map[int64]*domain.Question
	nextDocID int64
	nextQID   int64
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		documents: make(map[int64]*domain.Document),
		questions: make(map[int64]*domain.Question),
	}
}

func copyDocument(d *domain.Document) *domain.Document {
	out := *d
	return &out
}

func copyQuestion(q *domain.Question) *domain.Question {
	out := *q
	if q.Answer != nil {
		a := *q.Answer
		out.Answer = &a
	}
	return &out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
