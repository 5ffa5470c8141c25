// Package usecase は商品カタログ機能のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrProductNotFound はユーザーが該当IDの商品を持たない場合に返されます。
	ErrProductNotFound = errors.New("product not found")

	// ErrSaveInFlight は同じユーザーの保存がまだ実行中の場合に返されます。
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrNameRequired は商品名が空の場合に返されます。
	ErrNameRequired = errors.New("product name is required")

	// ErrPriceRequired は新規商品に価格がない場合に返されます。
	ErrPriceRequired = errors.New("product price is required")
)
