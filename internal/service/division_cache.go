package service

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/workdesk/work-control-api/internal/models"
)

// DivisionCache holds the aggregated artifacts of a division: the merged work
// record list plus the derived executor and approver lists. Entries expire a
// fixed duration after insertion (absolute, not sliding); an expired entry
// behaves as a miss. The cache is an explicit injected component, never a
// hidden global, so tests construct isolated instances.
type DivisionCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewDivisionCache constructs a cache with the given absolute expiry.
func NewDivisionCache(ttl time.Duration) *DivisionCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &DivisionCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func worksKey(divisionID int) string     { return fmt.Sprintf("division:%d:works", divisionID) }
func executorsKey(divisionID int) string { return fmt.Sprintf("division:%d:executors", divisionID) }
func approversKey(divisionID int) string { return fmt.Sprintf("division:%d:approvers", divisionID) }

// Works returns the cached record list for a division, if present and fresh.
func (c *DivisionCache) Works(divisionID int) ([]models.WorkRecord, bool) {
	value, ok := c.store.Get(worksKey(divisionID))
	if !ok {
		return nil, false
	}
	records, ok := value.([]models.WorkRecord)
	return records, ok
}

// SetWorks stores the record list. go-cache replaces the key atomically, so
// readers never observe a partially written list.
func (c *DivisionCache) SetWorks(divisionID int, records []models.WorkRecord) {
	c.store.Set(worksKey(divisionID), records, c.ttl)
}

// Executors returns the cached executor list for a division.
func (c *DivisionCache) Executors(divisionID int) ([]string, bool) {
	value, ok := c.store.Get(executorsKey(divisionID))
	if !ok {
		return nil, false
	}
	names, ok := value.([]string)
	return names, ok
}

// SetExecutors stores the executor list.
func (c *DivisionCache) SetExecutors(divisionID int, names []string) {
	c.store.Set(executorsKey(divisionID), names, c.ttl)
}

// Approvers returns the cached approver list for a division.
func (c *DivisionCache) Approvers(divisionID int) ([]string, bool) {
	value, ok := c.store.Get(approversKey(divisionID))
	if !ok {
		return nil, false
	}
	names, ok := value.([]string)
	return names, ok
}

// SetApprovers stores the approver list.
func (c *DivisionCache) SetApprovers(divisionID int, names []string) {
	c.store.Set(approversKey(divisionID), names, c.ttl)
}

// Invalidate removes every cached artifact of the division.
func (c *DivisionCache) Invalidate(divisionID int) {
	c.store.Delete(worksKey(divisionID))
	c.store.Delete(executorsKey(divisionID))
	c.store.Delete(approversKey(divisionID))
}
