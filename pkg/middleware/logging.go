package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-dashboard-api/pkg/log"
)

// CorrelationIDHeader devolve ao cliente o id usado nos logs da requisição
const CorrelationIDHeader = "X-Correlation-ID"

const slowRequestThreshold = 500 * time.Millisecond

// Segmentos de rota seguidos por um id do painel e o campo de log correspondente
var resourceSegments = map[string]string{
	"sessions":  "session_id",
	"campaigns": "campaign_id",
	"accounts":  "account_id",
	"charts":    "panel_id",
}

// ResourceFields extrai da rota os ids de sessão, campanha, conta, painel e cliente.
// O middleware roda antes do router, então os ids saem do próprio caminho.
func ResourceFields(r *http.Request) log.Fields {
	fields := log.Fields{}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		key, ok := resourceSegments[segments[i]]
		if !ok || segments[i+1] == "" {
			continue
		}
		if _, isSegment := resourceSegments[segments[i+1]]; isSegment {
			continue
		}
		fields[key] = segments[i+1]
		i++
	}

	if client := r.URL.Query().Get("client"); client != "" {
		fields["client_id"] = client
	}

	return fields
}

// LoggingMiddleware registra cada requisição com o id de correlação e os ids do painel
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)
			w.Header().Set(CorrelationIDHeader, correlationID)

			fields := ResourceFields(r)
			fields["correlation_id"] = correlationID
			fields["method"] = r.Method
			fields["path"] = r.URL.Path

			isDev := log.IsDevelopment()
			if isDev {
				log.L.WithFields(fields).Debug("→ Iniciando requisição")
			} else {
				log.L.WithFields(fields).WithFields(log.Fields{
					"remote_addr":    r.RemoteAddr,
					"query":          r.URL.RawQuery,
					"user_agent":     r.UserAgent(),
					"content_length": r.ContentLength,
				}).Info("Requisição iniciada")
			}

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			fields["status_code"] = lrw.statusCode
			fields["duration_ms"] = elapsed.Milliseconds()
			fields["response_bytes"] = lrw.written

			logger := log.L.WithFields(fields)
			if isDev {
				symbol := "✓"
				if lrw.statusCode >= http.StatusBadRequest {
					symbol = "✗"
				}
				logByStatus(logger, lrw.statusCode, fmt.Sprintf("%s %s %s em %s", symbol, r.Method, r.URL.Path, formatDuration(elapsed)))
			} else {
				logByStatus(logger, lrw.statusCode, "Requisição finalizada")
			}

			// PNGs e cargas de hierarquia lentas aparecem aqui primeiro
			if elapsed > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", formatDuration(elapsed))
			}
		})
	}
}

func logByStatus(logger log.Logger, status int, msg string) {
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error(msg)
	case status >= http.StatusBadRequest:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter guarda o status e o tamanho da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int
	wroteHeader bool
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	n, err := lrw.ResponseWriter.Write(b)
	lrw.written += n
	return n, err
}

// LogPanicMiddleware registra panics de handlers e responde 500 no formato de erro da API
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]

				fields := ResourceFields(r)
				fields["error"] = err
				fields["method"] = r.Method
				fields["path"] = r.URL.Path
				fields["correlation_id"] = log.GetCorrelationID(r.Context())

				log.L.WithFields(fields).Error("❌ PANIC na aplicação")
				if log.IsDevelopment() {
					fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stack)
				} else {
					log.L.WithField("stack_trace", string(stack)).Error("Stack trace do erro")
				}

				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
