package ranking

import (
	"sort"

	"github.com/samber/lo"
	"github.com/vfg2006/campaign-dashboard-api/internal/domain"
)

const PodiumSize = 3

type RankingService interface {
	Rank(siblings []domain.Sibling, currentID string, direction domain.RankDirection) (*domain.RankResult, error)
	Podium(siblings []domain.Sibling, direction domain.RankDirection) []domain.Sibling
}

type RankingEngine struct{}

func NewRankingEngine() RankingService {
	return &RankingEngine{}
}

// Rank posiciona currentID entre as irmãs. Empates mantêm a ordem de entrada.
func (e *RankingEngine) Rank(siblings []domain.Sibling, currentID string, direction domain.RankDirection) (*domain.RankResult, error) {
	if len(siblings) == 0 {
		return nil, domain.ErrNoSiblings
	}

	ordered := sortSiblings(siblings, direction)

	_, index, found := lo.FindIndexOf(ordered, func(s domain.Sibling) bool {
		return s.ID == currentID
	})
	if !found {
		return nil, domain.ErrSiblingNotFound
	}

	values := lo.Map(siblings, func(s domain.Sibling, _ int) float64 { return s.Value })
	minValue, maxValue := lo.Min(values), lo.Max(values)
	value := ordered[index].Value

	result := &domain.RankResult{
		Rank:  index + 1,
		Total: len(siblings),
		Min:   minValue,
		Max:   maxValue,
		Value: value,
	}

	switch {
	case maxValue > minValue:
		result.Position = lo.Clamp((value-minValue)/(maxValue-minValue)*100, 0, 100)
	case maxValue > 0:
		// todas iguais e positivas: escala cheia
		result.Position = 100
	}

	return result, nil
}

// Podium devolve as três primeiras irmãs na direção pedida
func (e *RankingEngine) Podium(siblings []domain.Sibling, direction domain.RankDirection) []domain.Sibling {
	ordered := sortSiblings(siblings, direction)
	if len(ordered) > PodiumSize {
		ordered = ordered[:PodiumSize]
	}
	return ordered
}

func sortSiblings(siblings []domain.Sibling, direction domain.RankDirection) []domain.Sibling {
	ordered := append([]domain.Sibling(nil), siblings...)

	sort.SliceStable(ordered, func(i, j int) bool {
		if direction == domain.LowerIsBetter {
			return ordered[i].Value < ordered[j].Value
		}
		return ordered[i].Value > ordered[j].Value
	})

	return ordered
}
