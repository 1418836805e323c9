package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange    = errors.New("período inválido")
	ErrStaleGeneration = errors.New("resultado pertence a uma passagem substituída")
	ErrSurfaceNotReady = errors.New("superfície de destino sem dimensões")
	ErrSiblingNotFound = errors.New("entidade não encontrada entre as irmãs")
	ErrNoSiblings      = errors.New("nenhuma entidade para ranquear")
	ErrSessionNotFound = errors.New("sessão não encontrada")
	ErrChartNotFound   = errors.New("gráfico não encontrado")
	ErrClientNotFound  = errors.New("cliente não encontrado")
)

// NetworkFailure representa uma falha ao falar com a fonte de dados
type NetworkFailure struct {
	Operation  string
	EntityID   string
	StatusCode int
	Err        error
}

func (e *NetworkFailure) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Operation, e.EntityID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Operation, e.EntityID, e.Err)
}

func (e *NetworkFailure) Unwrap() error {
	return e.Err
}

// LoadError agrega as falhas de uma etapa de carregamento que não pode ser absorvida
type LoadError struct {
	Operation string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
