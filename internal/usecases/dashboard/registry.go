package dashboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/pkg/utils"
)

// Registry mantém as sessões abertas por id
type Registry struct {
	mu       sync.RWMutex
	deps     Dependencies
	sessions map[string]*Session
	now      func() time.Time
}

func NewRegistry(deps Dependencies) *Registry {
	return &Registry{
		deps:     deps,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create abre uma sessão nova com id curto aleatório
func (r *Registry) Create() (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for attempt := 0; attempt < 3; attempt++ {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id da sessão: %w", err)
		}
		if _, exists := r.sessions[id]; exists {
			continue
		}

		session := NewSession(id, r.deps)
		session.now = r.now
		session.lastActive = r.now()
		r.sessions[id] = session
		return session, nil
	}

	return nil, fmt.Errorf("não foi possível gerar um id de sessão livre")
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrSessionNotFound)
	}
	return session, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrSessionNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle remove sessões sem eventos há mais de maxIdle e devolve quantas saíram
func (r *Registry) EvictIdle(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, session := range r.sessions {
		if session.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		logrus.WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": len(r.sessions),
		}).Info("dashboard: idle sessions evicted")
	}

	return evicted
}
