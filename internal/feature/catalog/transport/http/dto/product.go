package dto

import (
	"time"

	"storefront_backend/internal/feature/catalog/domain/entity"
	"storefront_backend/internal/feature/catalog/usecase"
	"storefront_backend/internal/platform/money"
)

// ProductResponse is one product card.
type ProductResponse struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	Descricao      string    `json:"descricao"`
	Preco          float64   `json:"preco"`
	PrecoFormatado string    `json:"preco_formatado"`
	Imagem         string    `json:"imagem"`
	HasImage       bool      `json:"has_image"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromProduct fills in the display price and the image placeholder.
func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Nome:           p.Nome,
		Descricao:      p.Descricao,
		Preco:          p.Preco,
		PrecoFormatado: money.FormatBRL(p.Preco),
		Imagem:         p.ImageOrPlaceholder(),
		HasImage:       p.HasImage(),
		CreatedAt:      p.CreatedAt,
	}
}

// ProductListResponse is the body of GET /api/products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Search   string            `json:"search,omitempty"`
	Message  string            `json:"message,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// FromListView converts a filtered list.
func FromListView(v usecase.ListView, search string) ProductListResponse {
	out := ProductListResponse{
		Products: make([]ProductResponse, 0, len(v.Products)),
		Total:    v.Total,
		Search:   search,
		Message:  v.Message,
		Error:    v.Error,
	}
	for _, p := range v.Products {
		out.Products = append(out.Products, FromProduct(p))
	}
	return out
}

// ProductForm is the multipart body of create and update. The price is read
// separately because an absent field and an empty one differ on update.
type ProductForm struct {
	Nome      string `form:"nome"`
	Descricao string `form:"descricao"`
}

// DeleteResponse reports whether the product was removed.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// DetailResponse is the body of GET /api/products/:id.
type DetailResponse struct {
	Status   string           `json:"status"`
	Product  *ProductResponse `json:"product,omitempty"`
	Error    string           `json:"error,omitempty"`
	BackLink string           `json:"back_link,omitempty"`
}

// FromDetail converts a detail state.
func FromDetail(s usecase.DetailState) DetailResponse {
	out := DetailResponse{Status: string(s.Status), Error: s.Error, BackLink: s.BackLink}
	if s.Product != nil {
		p := FromProduct(*s.Product)
		out.Product = &p
	}
	return out
}
