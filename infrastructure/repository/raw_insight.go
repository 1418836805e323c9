package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	rawInsightsTable = "raw_insights ri"
)

// RawInsightRepository guarda, por campanha e por dia de coleta, as linhas diárias
// brutas da janela de lookback, para que trocas de período no mesmo dia não voltem à API.
type RawInsightRepository interface {
	Get(ctx context.Context, campaignID string, fetchDate time.Time) ([]domain.RawInsightRow, bool, error)
	Save(ctx context.Context, campaignID string, fetchDate time.Time, rows []domain.RawInsightRow) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type rawInsightRepository struct {
	conn *postgres.Connection
}

func NewRawInsightRepository(conn *postgres.Connection) RawInsightRepository {
	return &rawInsightRepository{
		conn: conn,
	}
}

func (r *rawInsightRepository) Get(ctx context.Context, campaignID string, fetchDate time.Time) ([]domain.RawInsightRow, bool, error) {
	query, args, err := squirrel.
		Select("ri.rows").
		From(rawInsightsTable).
		Where(squirrel.Eq{"ri.campaign_id": campaignID, "ri.fetch_date": fetchDate.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var rowsJSON []byte
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&rowsJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("erro ao escanear raw insight: %w", err)
	}

	rows := make([]domain.RawInsightRow, 0)
	if err := json.Unmarshal(rowsJSON, &rows); err != nil {
		return nil, false, fmt.Errorf("erro ao deserializar JSON de rows: %w", err)
	}

	return rows, true, nil
}

func (r *rawInsightRepository) Save(ctx context.Context, campaignID string, fetchDate time.Time, rows []domain.RawInsightRow) error {
	if rows == nil {
		rows = []domain.RawInsightRow{}
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("erro ao serializar rows para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("raw_insights").
		Columns("campaign_id", "fetch_date", "rows").
		Values(campaignID, fetchDate.Format(time.DateOnly), rowsJSON).
		Suffix(`
			ON CONFLICT (campaign_id, fetch_date) DO UPDATE SET
				rows = EXCLUDED.rows,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *rawInsightRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("raw_insights").
		Where(squirrel.Lt{"fetch_date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
