package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
)

// IdleEvicter remove sessões ociosas
type IdleEvicter interface {
	EvictIdle(maxIdle time.Duration) int
}

// SessionEvictionService fecha periodicamente as sessões de painel sem atividade
type SessionEvictionService struct {
	scheduler    *gocron.Scheduler
	cronSchedule string
	idleTimeout  time.Duration
	registry     IdleEvicter
	mu           sync.Mutex
	lastRunAt    time.Time
	evictedTotal int
}

func NewSessionEvictionService(registry IdleEvicter, appConfig *config.Config) *SessionEvictionService {
	idle := appConfig.SessionEviction.IdleTimeout
	if idle <= 0 {
		idle = 30 * time.Minute
	}

	return &SessionEvictionService{
		scheduler:    gocron.NewScheduler(time.Local),
		cronSchedule: appConfig.SessionEviction.CronSchedule,
		idleTimeout:  idle,
		registry:     registry,
	}
}

// Start inicia o agendador
func (s *SessionEvictionService) Start(ctx context.Context) error {
	logrus.WithFields(logrus.Fields{
		"cron":         s.cronSchedule,
		"idle_timeout": s.idleTimeout.String(),
	}).Info("Iniciando agendador de expiração de sessões")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(s.evict)
	if err != nil {
		return fmt.Errorf("erro ao agendar expiração de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de expiração de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SessionEvictionService) evict() {
	evicted := s.registry.EvictIdle(s.idleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRunAt = time.Now()
	s.evictedTotal += evicted
}

// TriggerManualSync expira as sessões ociosas imediatamente
func (s *SessionEvictionService) TriggerManualSync() {
	s.evict()
}

// GetStatus retorna o status atual do agendador
func (s *SessionEvictionService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"cron":          s.cronSchedule,
		"idle_timeout":  s.idleTimeout.String(),
		"last_run_at":   s.lastRunAt,
		"evicted_total": s.evictedTotal,
	}
}
