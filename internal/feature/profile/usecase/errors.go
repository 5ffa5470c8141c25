// Package usecase はナビバーとプロフィールモーダルのロジックを実装します。
package usecase

import "errors"

var (
	// ErrProfileNotFound はユーザーのプロフィール行がない場合に返されます。
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSaveInFlight は同じユーザーのプロフィール保存が実行中の場合に返されます。
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrInvalidSexo は許可されていない性別の値に対して返されます。
	ErrInvalidSexo = errors.New("invalid sexo")
)
