package oracle

import (
	"strings"
	"sync"

	"github.com/mkotula/petscope/pkg/models"
)

// detailCache is a bounded cache of veterinary-detail responses. Detail for a
// given diagnosis/species/breed is stable, so repeat lookups skip the oracle.
// Eviction is insertion-ordered, which is close enough to LRU for a cache
// this small.
type detailCache struct {
	mu      sync.Mutex
	maxSize int
	order   []string
	entries map[string]*models.VeterinaryDetail
}

func newDetailCache(maxSize int) *detailCache {
	return &detailCache{
		maxSize: maxSize,
		entries: make(map[string]*models.VeterinaryDetail),
	}
}

func detailKey(diagnosis, species, breed string) string {
	return strings.ToLower(diagnosis) + "|" + strings.ToLower(species) + "|" + strings.ToLower(breed)
}

func (c *detailCache) get(key string) (*models.VeterinaryDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	detail, ok := c.entries[key]
	return detail, ok
}

func (c *detailCache) put(key string, detail *models.VeterinaryDetail) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = detail
}
