package pngsurface

import (
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 480
)

var (
	ErrForeignHandle = errors.New("handle materializado para outra superfície")
	ErrEmptyChart    = errors.New("gráfico sem pontos")
)

// Surface é uma superfície raster de tamanho fixo. Implementa charting.Surface
// e desenha em PNG os handles materializados para ela.
type Surface struct {
	id     string
	width  int
	height int
}

func New(id string, width, height int) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Surface{id: id, width: width, height: height}
}

func (s *Surface) ID() string {
	return s.id
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Render desenha o handle no writer. Handles (ou preenchimentos) criados
// para outra superfície são recusados.
func (s *Surface) Render(w io.Writer, handle *charting.ChartHandle) error {
	if handle.SurfaceID != s.id {
		return fmt.Errorf("%w: %s != %s", ErrForeignHandle, handle.SurfaceID, s.id)
	}
	if fill := handle.Dataset.Fill; fill != nil && fill.SurfaceID != s.id {
		return fmt.Errorf("%w: gradiente de %s", ErrForeignHandle, fill.SurfaceID)
	}
	if len(handle.Dataset.Values) == 0 {
		return fmt.Errorf("%s: %w", handle.ChartID, ErrEmptyChart)
	}

	yRange := &chart.ContinuousRange{Min: 0, Max: lo.Max(append([]float64{1}, handle.Dataset.Values...))}

	if handle.Type == domain.ChartTypeBar {
		return s.renderBar(w, handle, yRange)
	}
	return s.renderLine(w, handle, yRange)
}

func (s *Surface) renderBar(w io.Writer, handle *charting.ChartHandle, yRange chart.Range) error {
	fill := toDrawingColor(handle.Dataset.BackgroundColor)

	graph := chart.BarChart{
		Title:  handle.Title,
		Width:  handle.Width,
		Height: handle.Height,
		YAxis:  chart.YAxis{Range: yRange},
		Bars: lo.Map(handle.Dataset.Values, func(v float64, i int) chart.Value {
			return chart.Value{
				Label: labelAt(handle.Labels, i),
				Value: v,
				Style: chart.Style{FillColor: fill, StrokeColor: fill},
			}
		}),
	}

	return graph.Render(chart.PNG, w)
}

func (s *Surface) renderLine(w io.Writer, handle *charting.ChartHandle, yRange chart.Range) error {
	values := handle.Dataset.Values
	labels := handle.Labels

	// Um único ponto não forma intervalo no eixo X; repetimos o valor
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
		labels = []string{labelAt(labels, 0), ""}
	}

	xValues := lo.Map(values, func(_ float64, i int) float64 { return float64(i) })

	style := chart.Style{
		StrokeColor: toDrawingColor(handle.Dataset.BorderColor),
		StrokeWidth: 2,
	}
	if handle.Dataset.Fill != nil && len(handle.Dataset.Fill.Stops) > 0 {
		// go-chart não desenha gradiente; usamos a cor do topo
		style.FillColor = toDrawingColor(handle.Dataset.Fill.Stops[0].Color)
	}

	graph := chart.Chart{
		Title:  handle.Title,
		Width:  handle.Width,
		Height: handle.Height,
		XAxis: chart.XAxis{
			Ticks: lo.Map(labels, func(label string, i int) chart.Tick {
				return chart.Tick{Value: float64(i), Label: label}
			}),
		},
		YAxis: chart.YAxis{Range: yRange},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    handle.Dataset.Label,
				XValues: xValues,
				YValues: values,
				Style:   style,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func toDrawingColor(s string) drawing.Color {
	c, err := charting.ParseColor(s)
	if err != nil {
		return chart.ColorBlue
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(c.A * 255)}
}
