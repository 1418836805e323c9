package charting

import (
	"sort"
	"sync"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

// Cache guarda os descritores de gráfico da seleção atual, por id de painel.
// Get devolve cópias: quem consome não altera o que está em cache.
type Cache struct {
	mu          sync.RWMutex
	descriptors map[string]domain.ChartDescriptor
}

func NewCache() *Cache {
	return &Cache{descriptors: make(map[string]domain.ChartDescriptor)}
}

func (c *Cache) Put(id string, desc domain.ChartDescriptor) {
	desc = desc.Clone()
	desc.ID = id

	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[id] = desc
}

func (c *Cache) Get(id string) (domain.ChartDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	desc, ok := c.descriptors[id]
	if !ok {
		return domain.ChartDescriptor{}, false
	}
	return desc.Clone(), true
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = make(map[string]domain.ChartDescriptor)
}

// Replace troca todo o conteúdo de uma vez. Quem lê nunca vê a mistura
// de descritores da seleção antiga com os da nova.
func (c *Cache) Replace(descs []domain.ChartDescriptor) {
	next := make(map[string]domain.ChartDescriptor, len(descs))
	for _, d := range descs {
		next[d.ID] = d.Clone()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = next
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.descriptors)
}

// All devolve cópias de todos os descritores, ordenadas por id
func (c *Cache) All() []domain.ChartDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := lo.Keys(c.descriptors)
	sort.Strings(ids)

	return lo.Map(ids, func(id string, _ int) domain.ChartDescriptor {
		return c.descriptors[id].Clone()
	})
}
