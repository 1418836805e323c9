package domain

type RankDirection string

const (
	HigherIsBetter RankDirection = "higherIsBetter"
	LowerIsBetter  RankDirection = "lowerIsBetter"
)

// Sibling é uma entidade concorrente no ranking com o valor da métrica
type Sibling struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// RankResult é a posição de uma entidade entre suas irmãs. Position vai de 0 a 100
// e mede onde o valor cai entre o mínimo e o máximo.
type RankResult struct {
	Rank     int     `json:"rank"`
	Total    int     `json:"total"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
}
