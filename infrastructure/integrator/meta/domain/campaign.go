package metadomain

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type AdSet struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging acompanha toda listagem da Graph API. Next vem vazio na última página.
type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// Page é uma página genérica de resultados
type Page[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}
