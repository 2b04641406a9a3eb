package memory

import (
	"conversational-rag-be/pkg/rag/retriever"

	"github.com/patrickmn/go-cache"
)

// RetrieverRegistry maps session id -> retrieval handle for the lifetime of
// the process. go-cache serializes access internally, so concurrent uploads
// for different sessions never interfere; concurrent uploads for the same
// session resolve to last-successful-write-wins.
type RetrieverRegistry struct {
	cache *cache.Cache
}

func NewRetrieverRegistry() *RetrieverRegistry {
	// Handles are process-scoped; nothing expires on its own.
	c := cache.New(cache.NoExpiration, 0)
	return &RetrieverRegistry{cache: c}
}

func (r *RetrieverRegistry) Save(sessionID string, ret *retriever.Retriever) {
	r.cache.Set(sessionID, ret, cache.NoExpiration)
}

func (r *RetrieverRegistry) Get(sessionID string) (*retriever.Retriever, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*retriever.Retriever), true
	}
	return nil, false
}

func (r *RetrieverRegistry) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
