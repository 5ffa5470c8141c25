package entity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ProfileTable is the row-store table holding profiles.
const ProfileTable = "loja_perfil"

// DefaultDisplayName is shown when the profile has no name.
const DefaultDisplayName = "Usuário"

// Sexo values accepted by the profile form. Empty means unspecified.
const (
	SexoUnspecified = ""
	SexoMasculino   = "Masculino"
	SexoFeminino    = "Feminino"
	SexoOutro       = "Outro"
)

// ValidSexo reports whether s is one of the accepted values.
func ValidSexo(s string) bool {
	switch s {
	case SexoUnspecified, SexoMasculino, SexoFeminino, SexoOutro:
		return true
	}
	return false
}

// Profile is the single profile row of a user.
type Profile struct {
	ID         string `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	UserID     string `json:"user_id" gorm:"size:36;uniqueIndex;not null" bson:"user_id"`
	Nome       string `json:"nome" gorm:"size:255" bson:"nome"`
	Email      string `json:"email" gorm:"size:255" bson:"email"`
	Sexo       string `json:"sexo" gorm:"size:16" bson:"sexo"`
	Pais       string `json:"pais" gorm:"size:128" bson:"pais"`
	Estado     string `json:"estado" gorm:"size:128" bson:"estado"`
	FotoPerfil string `json:"foto_perfil" gorm:"size:1024" bson:"foto_perfil"`
}

func (Profile) TableName() string { return ProfileTable }

// Initial is the uppercased first letter of the name, or "?".
func (p Profile) Initial() string {
	name := strings.TrimSpace(p.Nome)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// DisplayName falls back to DefaultDisplayName.
func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.Nome); name != "" {
		return name
	}
	return DefaultDisplayName
}
