package entity

import (
	"strings"
	"time"
)

// ProductTable is the row-store table holding products.
const ProductTable = "loja_produto"

// PlaceholderImage is shown for products without an image.
const PlaceholderImage = "/generic-product-display.png"

// Product is a product owned by one user.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	Nome      string    `json:"nome" gorm:"size:255;not null" bson:"nome"`
	Descricao string    `json:"descricao" gorm:"type:text" bson:"descricao"`
	Preco     float64   `json:"preco" gorm:"type:decimal(10,2);not null;default:0" bson:"preco"`
	Imagem    string    `json:"imagem" gorm:"size:1024" bson:"imagem"`
	UserID    string    `json:"user_id" gorm:"size:36;index;not null" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index" bson:"created_at"`
}

// TableName returns the gorm table name.
func (Product) TableName() string { return ProductTable }

// HasImage reports whether an image reference is stored.
func (p Product) HasImage() bool { return strings.TrimSpace(p.Imagem) != "" }

// ImageOrPlaceholder returns the stored image URL, or PlaceholderImage.
func (p Product) ImageOrPlaceholder() string {
	if p.HasImage() {
		return p.Imagem
	}
	return PlaceholderImage
}

// Matches reports whether term occurs in the name or the description, ignoring case.
// An empty term matches every product.
func (p Product) Matches(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Nome), t) ||
		(p.Descricao != "" && strings.Contains(strings.ToLower(p.Descricao), t))
}
