package vectorstore

import (
	"fmt"

	"movierec/internal/domain"
	"movierec/internal/vectorstore/memory"
)

// Storage holds the document matrix and ranks rows by cosine similarity.
type Storage = domain.VectorStore

// New returns the store named by kind. An empty kind means memory.
func New(kind string) (Storage, error) {
	switch kind {
	case "memory", "":
		return memory.NewStorage(), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", kind)
	}
}
