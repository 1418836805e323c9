package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
)

// Cada passo é idempotente; o script pode rodar a cada deploy
var migrations = []struct {
	name      string
	statement string
}{
	{
		name: "create raw_insights",
		statement: `
			CREATE TABLE IF NOT EXISTS raw_insights (
				campaign_id TEXT        NOT NULL,
				fetch_date  DATE        NOT NULL,
				rows        JSONB       NOT NULL DEFAULT '[]'::jsonb,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (campaign_id, fetch_date)
			)`,
	},
	{
		name:      "index raw_insights by fetch_date",
		statement: `CREATE INDEX IF NOT EXISTS raw_insights_fetch_date_idx ON raw_insights (fetch_date)`,
	},
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func migrate(tx *sql.Tx) error {
	for _, m := range migrations {
		startTime := time.Now()
		if _, err := tx.Exec(m.statement); err != nil {
			logrus.WithError(err).WithField("migration", m.name).Error("ERRO ao aplicar migração")
			return err
		}
		logrus.WithFields(logrus.Fields{
			"migration": m.name,
			"duration":  time.Since(startTime).String(),
		}).Info("Migração aplicada")
	}
	return nil
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := conn.RunInTransaction(ctx, migrate); err != nil {
		logrus.WithError(err).Fatal("Migração interrompida, nenhuma alteração aplicada")
	}

	logrus.WithField("migrations", len(migrations)).Info("Script de migração concluído com sucesso")
}
