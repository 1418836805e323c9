package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/render/pngsurface"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

type eventResponse struct {
	Snapshot dashboard.Snapshot `json:"snapshot"`
	Error    *apiErrors.APIError `json:"error,omitempty"`
}

func CreateSession(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := registry.Create()
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("sessions: failed to create session")
			apiErrors.WriteFromError(w, err)
			return
		}

		log.ForContext(r.Context()).WithField("session_id", session.ID()).Info("sessions: session created")
		writeJSON(w, r, http.StatusCreated, session.Snapshot())
	})
}

func GetSession(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := registry.Get(httprouter.ParamsFromContext(r.Context()).ByName("id"))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}
		writeJSON(w, r, http.StatusOK, session.Snapshot())
	})
}

func DeleteSession(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := registry.Delete(httprouter.ParamsFromContext(r.Context()).ByName("id")); err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// PostSessionEvent aplica um evento na sessão. Mesmo quando o evento falha
// (ex.: erro ao listar campanhas) o estado resultante acompanha o erro.
func PostSessionEvent(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		session, err := registry.Get(id)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		var payload dashboard.EventPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo do evento inválido", err.Error())
			return
		}

		event, err := payload.ToEvent()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		snapshot, err := session.Handle(r.Context(), event)
		if err != nil {
			logger.WithFields(log.Fields{
				"session_id": id,
				"event":      event.Name(),
				"error":      err.Error(),
			}).Warn("sessions: event failed")

			code := apiErrors.CodeFor(err)
			apiErr := apiErrors.FromError(err, code)
			writeJSON(w, r, apiErrors.StatusFor(code), eventResponse{Snapshot: session.Snapshot(), Error: &apiErr})
			return
		}

		writeJSON(w, r, http.StatusOK, eventResponse{Snapshot: snapshot})
	})
}

func GetSessionChart(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		session, err := registry.Get(params.ByName("id"))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		desc, err := session.Chart(params.ByName("panel"))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}
		writeJSON(w, r, http.StatusOK, desc)
	})
}

// GetSessionChartPNG materializa o gráfico numa superfície PNG própria e devolve a imagem
func GetSessionChartPNG(registry *dashboard.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		params := httprouter.ParamsFromContext(r.Context())

		session, err := registry.Get(params.ByName("id"))
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		width, err := queryInt(r, "width", pngsurface.DefaultWidth)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}
		height, err := queryInt(r, "height", pngsurface.DefaultHeight)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		panelID := params.ByName("panel")
		surface := pngsurface.New(fmt.Sprintf("png:%s:%s", session.ID(), panelID), width, height)

		handle, err := session.Materialize(r.Context(), panelID, surface)
		if err != nil {
			apiErrors.WriteFromError(w, err)
			return
		}

		var buf bytes.Buffer
		if err := surface.Render(&buf, handle); err != nil {
			logger.WithFields(log.Fields{
				"session_id": session.ID(),
				"panel_id":   panelID,
				"error":      err.Error(),
			}).Error("sessions: failed to render chart")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("sessions: failed to write chart image")
		}
	})
}
