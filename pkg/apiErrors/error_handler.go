package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidRange        = "VAL_004" // Período inválido

	// Erros de recurso (4000-4999)
	ErrNotFound         = "RES_001" // Sessão, gráfico ou cliente inexistente
	ErrSurfaceNotReady  = "RES_002" // Superfície sem dimensões
	ErrMethodNotAllowed = "RES_003" // Método não aceito pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrLoadFailure       = "SRV_005" // Falha ao carregar a hierarquia
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidRange:        http.StatusBadRequest,
	ErrNotFound:            http.StatusNotFound,
	ErrSurfaceNotReady:     http.StatusConflict,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrCommunication:       http.StatusServiceUnavailable,
	ErrLoadFailure:         http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor classifica um erro do domínio no código de API correspondente
func CodeFor(err error) string {
	var (
		loadErr *domain.LoadError
		netErr  *domain.NetworkFailure
	)

	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return ErrInvalidRange
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrChartNotFound),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrSiblingNotFound):
		return ErrNotFound
	case errors.Is(err, domain.ErrSurfaceNotReady):
		return ErrSurfaceNotReady
	case errors.As(err, &loadErr):
		return ErrLoadFailure
	case errors.As(err, &netErr):
		return ErrExternalService
	}
	return ErrInternalServer
}

// WriteFromError escreve a resposta de erro a partir de um erro Go
func WriteFromError(w http.ResponseWriter, err error) {
	WriteError(w, CodeFor(err), err.Error(), nil)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
