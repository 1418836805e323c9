package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/api"
	"github.com/vfg2006/campaign-dashboard-api/internal/api/handler"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/scheduler"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/overview"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-dashboard-api/pkg/limiter"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := config.LoadClients(cfg.ClientsFile)
	if err != nil {
		logrus.WithError(err).Warn("Cadastro de clientes não carregado, resumo de clientes ficará vazio")
		clients = map[string]domain.Client{}
	}

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(metaClient)

	insightService := insighting.NewService(cfg, metaIntegrator)

	// O cache de insights brutos é opcional; sem banco a API segue falando direto com a Graph API
	var rawInsightRepo repository.RawInsightRepository
	if cfg.RawCache.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		rawInsightRepo = repository.NewRawInsightRepository(pgConn)
		insightService = insightService.WithCache(rawInsightRepo)
	}

	// Um único limitador para todas as chamadas à Graph API
	requestLimiter := limiter.New(cfg.Engine.MaxConcurrency)
	normalizer := normalizing.New(cfg.Engine.ResultMarkers)

	loader := loading.NewLoader(insightService, requestLimiter, normalizer, cfg.Engine.AdInsightsCeiling)
	overviewService := overview.NewService(clients, insightService, requestLimiter, normalizer)

	registry := dashboard.NewRegistry(dashboard.Dependencies{
		Loader:              loader,
		Currency:            insightService,
		Ranking:             ranking.NewRankingEngine(),
		Rebinder:            charting.NewRebinder(cfg.Engine.SurfaceSettleDelay, cfg.Engine.SurfaceMaxRetries),
		VisibilityThreshold: cfg.Engine.VisibilityThreshold,
	})

	overviewSyncService := scheduler.NewOverviewSyncService(overviewService, cfg)
	rawCachePurgeService := scheduler.NewRawCachePurgeService(rawInsightRepo, cfg)
	sessionEvictionService := scheduler.NewSessionEvictionService(registry, cfg)

	// Inicia os agendadores em background
	if err := overviewSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo de clientes")
	}

	if err := rawCachePurgeService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do cache de insights")
	}

	if err := sessionEvictionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de expiração de sessões")
	}

	server, err := api.New(cfg, api.Services{
		Loader:        loader,
		Overview:      overviewService,
		OverviewCache: overviewSyncService,
		Sessions:      registry,
		CronJobs: handler.CronJobServices{
			OverviewSyncService:    overviewSyncService,
			RawCachePurgeService:   rawCachePurgeService,
			SessionEvictionService: sessionEvictionService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	logrus.WithFields(logrus.Fields{
		"clients":         len(clients),
		"max_concurrency": requestLimiter.Max(),
		"result_markers":  len(normalizer.Markers()),
		"raw_cache":       cfg.RawCache.Enabled,
	}).Info("Agregador de métricas configurado")

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
