package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
)

// RawCachePurgeConfig representa a configuração da limpeza do cache de insights brutos
type RawCachePurgeConfig struct {
	CronSchedule  string
	RetentionDays int
	Enabled       bool
}

// RawCachePurgeService apaga periodicamente os retratos diários antigos do cache
type RawCachePurgeService struct {
	scheduler      *gocron.Scheduler
	config         RawCachePurgeConfig
	rawInsightRepo repository.RawInsightRepository
	purgeRunning   bool
	purgeMutex     sync.Mutex
	lastPurgeAt    time.Time
	lastPurgedRows int64
	lastPurgeError string
}

func NewRawCachePurgeService(rawInsightRepo repository.RawInsightRepository, appConfig *config.Config) *RawCachePurgeService {
	purgeConfig := RawCachePurgeConfig{
		CronSchedule:  appConfig.RawCache.PurgeCron,
		RetentionDays: appConfig.RawCache.RetentionDays,
		Enabled:       appConfig.RawCache.Enabled && rawInsightRepo != nil,
	}
	if purgeConfig.RetentionDays <= 0 {
		purgeConfig.RetentionDays = 7
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  purgeConfig.CronSchedule,
		"retention_days": purgeConfig.RetentionDays,
		"enabled":        purgeConfig.Enabled,
	}).Info("Configuração da limpeza do cache de insights carregada")

	return &RawCachePurgeService{
		scheduler:      gocron.NewScheduler(time.Local),
		config:         purgeConfig,
		rawInsightRepo: rawInsightRepo,
	}
}

// Start inicia o agendador
func (s *RawCachePurgeService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza do cache de insights desabilitada por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.purge(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache de insights: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do cache de insights")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *RawCachePurgeService) purge(ctx context.Context) {
	s.purgeMutex.Lock()
	if s.purgeRunning {
		s.purgeMutex.Unlock()
		logrus.Info("Limpeza do cache de insights já em andamento, ignorando")
		return
	}
	s.purgeRunning = true
	s.purgeMutex.Unlock()

	deleted, err := s.rawInsightRepo.DeleteOlderThan(ctx, s.config.RetentionDays)

	s.purgeMutex.Lock()
	defer s.purgeMutex.Unlock()
	s.purgeRunning = false
	s.lastPurgeAt = time.Now()

	if err != nil {
		logrus.WithError(err).Error("Erro ao limpar o cache de insights")
		s.lastPurgeError = err.Error()
		return
	}

	s.lastPurgedRows = deleted
	s.lastPurgeError = ""
	logrus.WithFields(logrus.Fields{
		"deleted":        deleted,
		"retention_days": s.config.RetentionDays,
	}).Info("Cache de insights limpo")
}

// TriggerManualSync executa a limpeza fora do horário agendado
func (s *RawCachePurgeService) TriggerManualSync() {
	if s.rawInsightRepo == nil {
		logrus.Info("Cache de insights não configurado, nada a limpar")
		return
	}
	go s.purge(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *RawCachePurgeService) GetStatus() map[string]any {
	s.purgeMutex.Lock()
	defer s.purgeMutex.Unlock()

	return map[string]any{
		"enabled":          s.config.Enabled,
		"cron":             s.config.CronSchedule,
		"retention_days":   s.config.RetentionDays,
		"running":          s.purgeRunning,
		"last_purge_at":    s.lastPurgeAt,
		"last_purged_rows": s.lastPurgedRows,
		"last_error":       s.lastPurgeError,
	}
}
