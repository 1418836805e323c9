package dashboard

import (
	"fmt"

	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/charting"
)

// Event é um comando vindo da camada de apresentação
type Event interface {
	Name() string
}

// AccountsSelected troca as contas agregadas e recarrega as campanhas
type AccountsSelected struct {
	AccountIDs []string
}

// RangeChanged troca o período e recarrega as campanhas
type RangeChanged struct {
	Range domain.RangeSelection
}

// CampaignSelected monta gráficos e ranking de uma campanha
type CampaignSelected struct {
	CampaignID string
}

// PanelVisibility informa a fração visível de um contêiner
type PanelVisibility struct {
	Container string
	Ratio     float64
}

// ModalOpened abre o gráfico ampliado de um painel numa nova superfície
type ModalOpened struct {
	PanelID string
	Surface charting.Surface
}

type ModalClosed struct{}

func (AccountsSelected) Name() string { return "accounts_selected" }
func (RangeChanged) Name() string     { return "range_changed" }
func (CampaignSelected) Name() string { return "campaign_selected" }
func (PanelVisibility) Name() string  { return "panel_visibility" }
func (ModalOpened) Name() string      { return "modal_opened" }
func (ModalClosed) Name() string      { return "modal_closed" }

// EventPayload é o formato JSON dos eventos recebidos pela API
type EventPayload struct {
	Type       string                 `json:"type"`
	AccountIDs []string               `json:"account_ids,omitempty"`
	Range      *domain.RangeSelection `json:"range,omitempty"`
	CampaignID string                 `json:"campaign_id,omitempty"`
	Container  string                 `json:"container,omitempty"`
	Ratio      float64                `json:"ratio,omitempty"`
	PanelID    string                 `json:"panel_id,omitempty"`
	Width      int                    `json:"width,omitempty"`
	Height     int                    `json:"height,omitempty"`
	SurfaceID  string                 `json:"surface_id,omitempty"`
}

// ToEvent converte o payload no evento tipado correspondente
func (p EventPayload) ToEvent() (Event, error) {
	switch p.Type {
	case AccountsSelected{}.Name():
		return AccountsSelected{AccountIDs: p.AccountIDs}, nil
	case RangeChanged{}.Name():
		if p.Range == nil {
			return nil, fmt.Errorf("%w: range ausente", domain.ErrInvalidRange)
		}
		return RangeChanged{Range: *p.Range}, nil
	case CampaignSelected{}.Name():
		if p.CampaignID == "" {
			return nil, fmt.Errorf("campaign_id é obrigatório")
		}
		return CampaignSelected{CampaignID: p.CampaignID}, nil
	case PanelVisibility{}.Name():
		return PanelVisibility{Container: p.Container, Ratio: p.Ratio}, nil
	case ModalOpened{}.Name():
		surfaceID := p.SurfaceID
		if surfaceID == "" {
			surfaceID = "modal"
		}
		return ModalOpened{
			PanelID: p.PanelID,
			Surface: charting.ViewportSurface{SurfaceID: surfaceID, Width: p.Width, Height: p.Height},
		}, nil
	case ModalClosed{}.Name():
		return ModalClosed{}, nil
	}

	return nil, fmt.Errorf("tipo de evento desconhecido: %q", p.Type)
}
