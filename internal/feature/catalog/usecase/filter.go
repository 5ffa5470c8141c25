package usecase

import "storefront_backend/internal/feature/catalog/domain/entity"

// FilterProducts は名前か説明にtermを含む商品を大文字小文字を区別せず元の順序で返します。
// 入力のスライスは変更しません。
func FilterProducts(products []entity.Product, term string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	return out
}

// MergeSaved はsavedを反映した一覧を返します。未知のIDは先頭に追加し、
// 既知のIDはその位置で置き換えます。
func MergeSaved(products []entity.Product, saved entity.Product) []entity.Product {
	for i, p := range products {
		if p.ID == saved.ID {
			out := make([]entity.Product, len(products))
			copy(out, products)
			out[i] = saved
			return out
		}
	}
	out := make([]entity.Product, 0, len(products)+1)
	out = append(out, saved)
	return append(out, products...)
}

// RemoveByID はIDが一致する要素を除いた一覧を返します。
func RemoveByID(products []entity.Product, id string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// OwnedBy はuserIDの商品だけを残します。
func OwnedBy(products []entity.Product, userID string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}
