package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"subhub-be/internal/dto"
)

// SubscriptionCache keeps recently served projections in process memory so
// repeated GETs on the same id skip the database.
type SubscriptionCache struct {
	cache *cache.Cache
}

func NewSubscriptionCache() *SubscriptionCache {
	// Default expiration of 5 minutes, purge sweep every 10 minutes
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &SubscriptionCache{
		cache: c,
	}
}

func (r *SubscriptionCache) Set(res *dto.SubscriptionResponse) {
	r.cache.Set(res.Id.String(), res, cache.DefaultExpiration)
}

func (r *SubscriptionCache) Get(id uuid.UUID) (*dto.SubscriptionResponse, bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(*dto.SubscriptionResponse), true
	}
	return nil, false
}

func (r *SubscriptionCache) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
