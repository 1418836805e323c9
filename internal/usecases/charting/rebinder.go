package charting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

const (
	DefaultSettleDelay = 100 * time.Millisecond
	DefaultMaxRetries  = 10

	gradientTopAlpha    = 0.5
	gradientBottomAlpha = 0.05
)

var ErrMismatchedSeries = errors.New("labels e valores com tamanhos diferentes")

// Surface é o destino onde um gráfico será desenhado. Um tamanho zero
// significa que a superfície ainda não está disposta (ex.: modal abrindo).
type Surface interface {
	ID() string
	Size() (width, height int)
}

// ViewportSurface é uma superfície declarada pelo cliente, só com id e dimensões
type ViewportSurface struct {
	SurfaceID string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func (v ViewportSurface) ID() string {
	return v.SurfaceID
}

func (v ViewportSurface) Size() (int, int) {
	return v.Width, v.Height
}

type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Gradient é um recurso de preenchimento criado para uma superfície específica.
// Ele não pode ser reaproveitado em outra superfície.
type Gradient struct {
	SurfaceID string      `json:"surface_id"`
	X0        float64     `json:"x0"`
	Y0        float64     `json:"y0"`
	X1        float64     `json:"x1"`
	Y1        float64     `json:"y1"`
	Stops     []ColorStop `json:"stops"`
}

type HandleDataset struct {
	Label           string    `json:"label"`
	Values          []float64 `json:"values"`
	BorderColor     string    `json:"border_color"`
	BackgroundColor string    `json:"background_color,omitempty"`
	Fill            *Gradient `json:"fill,omitempty"`
}

// ChartHandle é um gráfico materializado numa superfície
type ChartHandle struct {
	ChartID   string           `json:"chart_id"`
	SurfaceID string           `json:"surface_id"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Type      domain.ChartType `json:"type"`
	Title     string           `json:"title"`
	Currency  string           `json:"currency"`
	Labels    []string         `json:"labels"`
	Dataset   HandleDataset    `json:"dataset"`
}

type Rebinder struct {
	settleDelay time.Duration
	maxRetries  uint64
}

func NewRebinder(settleDelay time.Duration, maxRetries int) *Rebinder {
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Rebinder{settleDelay: settleDelay, maxRetries: uint64(maxRetries)}
}

// Materialize constrói um ChartHandle novo para a superfície a partir do descritor.
// Nada é compartilhado com o descritor nem com handles de outras superfícies;
// gradientes são recriados com as dimensões da superfície de destino.
func (r *Rebinder) Materialize(desc domain.ChartDescriptor, surface Surface) (*ChartHandle, error) {
	width, height := surface.Size()
	if width <= 0 || height <= 0 {
		return nil, domain.ErrSurfaceNotReady
	}
	if len(desc.Labels) != len(desc.Dataset.Values) {
		return nil, fmt.Errorf("%s: %w", desc.ID, ErrMismatchedSeries)
	}

	desc = desc.Clone()

	handle := &ChartHandle{
		ChartID:   desc.ID,
		SurfaceID: surface.ID(),
		Width:     width,
		Height:    height,
		Type:      desc.Type,
		Title:     desc.Title,
		Currency:  desc.Currency,
		Labels:    desc.Labels,
		Dataset: HandleDataset{
			Label:       desc.Dataset.Label,
			Values:      desc.Dataset.Values,
			BorderColor: desc.Dataset.Color,
		},
	}

	switch {
	case desc.Type == domain.ChartTypeBar:
		handle.Dataset.BackgroundColor = desc.Dataset.Color
	case desc.Type == domain.ChartTypeLine && desc.Dataset.FillEnabled:
		gradient, err := newVerticalGradient(surface.ID(), height, desc.Dataset.Color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", desc.ID, err)
		}
		handle.Dataset.Fill = gradient
	}

	return handle, nil
}

// MaterializeWhenReady espera a superfície assentar e tenta de novo, em intervalos fixos,
// enquanto ela não tiver dimensões.
func (r *Rebinder) MaterializeWhenReady(ctx context.Context, desc domain.ChartDescriptor, surface Surface) (*ChartHandle, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(r.settleDelay):
	}

	var handle *ChartHandle
	attempts := 0

	operation := func() error {
		attempts++
		h, err := r.Materialize(desc, surface)
		if errors.Is(err, domain.ErrSurfaceNotReady) {
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		handle = h
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.settleDelay), r.maxRetries),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		logrus.WithFields(logrus.Fields{
			"chart_id":   desc.ID,
			"surface_id": surface.ID(),
			"attempts":   attempts,
			"error":      err.Error(),
		}).Warn("charting: failed to materialize chart")
		return nil, err
	}

	return handle, nil
}

func newVerticalGradient(surfaceID string, height int, color string) (*Gradient, error) {
	base, err := ParseColor(color)
	if err != nil {
		return nil, err
	}

	return &Gradient{
		SurfaceID: surfaceID,
		X0:        0,
		Y0:        0,
		X1:        0,
		Y1:        float64(height),
		Stops: []ColorStop{
			{Offset: 0, Color: base.WithAlpha(gradientTopAlpha).String()},
			{Offset: 1, Color: base.WithAlpha(gradientBottomAlpha).String()},
		},
	}, nil
}
