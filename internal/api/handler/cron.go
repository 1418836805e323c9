package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeOverview        = "overview"
	CronJobTypeRawCachePurge   = "raw-cache-purge"
	CronJobTypeSessionEviction = "session-eviction"
	CronJobTypeAll             = "all"
)

// CronJob é um agendador que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	OverviewSyncService    CronJob
	RawCachePurgeService   CronJob
	SessionEvictionService CronJob
}

func (s CronJobServices) byType() map[string]CronJob {
	return map[string]CronJob{
		CronJobTypeOverview:        s.OverviewSyncService,
		CronJobTypeRawCachePurge:   s.RawCachePurgeService,
		CronJobTypeSessionEviction: s.SessionEvictionService,
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.byType()

		if cronType == CronJobTypeAll {
			for _, job := range jobs {
				if job != nil {
					job.TriggerManualSync()
				}
			}
		} else {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: overview, raw-cache-purge, session-eviction, all", nil)
				return
			}
			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cron job não disponível", nil)
				return
			}
			job.TriggerManualSync()
		}

		// Responder com sucesso
		writeJSON(w, r, http.StatusOK, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := make(map[string]any)
		for name, job := range services.byType() {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
