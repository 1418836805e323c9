package metadomain

type Creative struct {
	ThumbnailURL string `json:"thumbnail_url"`
	ImageURL     string `json:"image_url"`
}

type Ad struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	Creative *Creative `json:"creative,omitempty"`
}

// Thumbnail devolve a miniatura do criativo, caindo para a imagem quando não houver
func (a Ad) Thumbnail() string {
	if a.Creative == nil {
		return ""
	}
	if a.Creative.ThumbnailURL != "" {
		return a.Creative.ThumbnailURL
	}
	return a.Creative.ImageURL
}
