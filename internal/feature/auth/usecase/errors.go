package usecase

import "errors"

var (
	// ErrEmailRequired はメールアドレスが空のとき、バックエンド呼び出し前に返されます。
	ErrEmailRequired = errors.New("email is required")

	// ErrPasswordRequired はパスワードが空のとき、バックエンド呼び出し前に返されます。
	ErrPasswordRequired = errors.New("password is required")

	// ErrProfileCreate はサインアップ後のプロフィール行作成の失敗をラップします。
	ErrProfileCreate = errors.New("failed to create profile")
)
