package domain

type NodeKind string

const (
	NodeKindAccount  NodeKind = "account"
	NodeKindCampaign NodeKind = "campaign"
	NodeKindAdSet    NodeKind = "adset"
	NodeKindAd       NodeKind = "ad"
)

// Granularity controla se a fonte devolve uma linha agregada ou uma por dia
type Granularity string

const (
	GranularityTotal Granularity = "total"
	GranularityDaily Granularity = "daily"
)

// EntityRef é a referência listada pela fonte de dados, ainda sem métricas
type EntityRef struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// HierarchyNode é uma entidade da árvore conta > campanha > conjunto > anúncio
// com suas métricas normalizadas.
type HierarchyNode struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Kind         NodeKind         `json:"kind"`
	AccountID    string           `json:"account_id,omitempty"`
	Metrics      MetricsRecord    `json:"metrics"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	Children     []*HierarchyNode `json:"children,omitempty"`
}

// Flatten devolve os nós folha de uma árvore em ordem de profundidade
func Flatten(nodes []*HierarchyNode) []*HierarchyNode {
	out := make([]*HierarchyNode, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Children) == 0 {
			out = append(out, n)
			continue
		}
		out = append(out, Flatten(n.Children)...)
	}
	return out
}
