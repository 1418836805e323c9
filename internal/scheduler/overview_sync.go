package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview"
)

const overviewSyncTimeout = 5 * time.Minute

// OverviewSyncConfig representa a configuração do agendador do resumo de clientes
type OverviewSyncConfig struct {
	CronSchedule string
	Range        domain.RangeSelection
	SyncEnabled  bool
}

// OverviewSyncService recalcula periodicamente o resumo de todos os clientes e guarda o último resultado
type OverviewSyncService struct {
	scheduler           *gocron.Scheduler
	config              OverviewSyncConfig
	overviewer          overview.Overviewer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastError           string
	latest              []domain.ClientOverview
}

func NewOverviewSyncService(overviewer overview.Overviewer, appConfig *config.Config) *OverviewSyncService {
	syncConfig := OverviewSyncConfig{
		CronSchedule: appConfig.OverviewSync.CronSchedule,
		Range:        domain.Preset(domain.RangePreset(appConfig.OverviewSync.Preset)),
		SyncEnabled:  appConfig.OverviewSync.Enabled,
	}

	if err := syncConfig.Range.Validate(); err != nil {
		logrus.WithError(err).Warn("Preset inválido para o resumo de clientes, usando today")
		syncConfig.Range = domain.Preset(domain.PresetToday)
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"range":         syncConfig.Range.String(),
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador do resumo de clientes carregada")

	return &OverviewSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		overviewer: overviewer,
	}
}

// Start inicia o agendador
func (s *OverviewSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização do resumo de clientes desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador do resumo de clientes")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncOverview()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo de clientes: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador do resumo de clientes")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *OverviewSyncService) syncOverview() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Resumo de clientes já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), overviewSyncTimeout)
	defer cancel()

	startTime := time.Now()
	overviews, err := s.overviewer.GetOverview(ctx, s.config.Range)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Erro ao calcular o resumo de clientes")
		s.lastError = err.Error()
		return
	}

	s.latest = overviews
	s.lastError = ""
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"clients":  len(overviews),
		"range":    s.config.Range.String(),
	}).Info("Resumo de clientes atualizado")
}

// Latest devolve o último resumo calculado e quando ele terminou
func (s *OverviewSyncService) Latest() ([]domain.ClientOverview, time.Time, bool) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.lastSyncCompletedAt.IsZero() {
		return nil, time.Time{}, false
	}
	return append([]domain.ClientOverview(nil), s.latest...), s.lastSyncCompletedAt, true
}

// Range devolve o período usado pelo agendador
func (s *OverviewSyncService) Range() domain.RangeSelection {
	return s.config.Range
}

// TriggerManualSync inicia manualmente um novo cálculo do resumo
func (s *OverviewSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Resumo de clientes já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando cálculo manual do resumo de clientes")
	go s.syncOverview()
}

// GetStatus retorna o status atual do agendador
func (s *OverviewSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_range":             s.config.Range.String(),
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_error":             s.lastError,
		"clients":                len(s.latest),
	}
}
