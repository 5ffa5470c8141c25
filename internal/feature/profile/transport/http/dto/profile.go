package dto

import (
	"storefront_backend/internal/feature/profile/domain/entity"
	"storefront_backend/internal/feature/profile/usecase"
)

// ProfileResponse is the profile held by the navbar and shown in the modal.
type ProfileResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Sexo        string `json:"sexo"`
	Pais        string `json:"pais"`
	Estado      string `json:"estado"`
	FotoPerfil  string `json:"foto_perfil"`
	DisplayName string `json:"display_name"`
	Initial     string `json:"initial"`
}

func FromProfile(p entity.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Nome:        p.Nome,
		Email:       p.Email,
		Sexo:        p.Sexo,
		Pais:        p.Pais,
		Estado:      p.Estado,
		FotoPerfil:  p.FotoPerfil,
		DisplayName: p.DisplayName(),
		Initial:     p.Initial(),
	}
}

// NavbarResponse is the body of GET /api/navbar.
type NavbarResponse struct {
	UserID     string           `json:"user_id"`
	Email      string           `json:"email"`
	ShowAvatar bool             `json:"show_avatar"`
	Profile    *ProfileResponse `json:"profile,omitempty"`
	Error      string           `json:"error,omitempty"`
}

func FromNavbar(s usecase.NavbarState) NavbarResponse {
	var res NavbarResponse
	if s.Identity != nil {
		res.UserID = s.Identity.ID
		res.Email = s.Identity.Email
	}
	res.ShowAvatar = s.ShowAvatar()
	if s.Profile != nil {
		p := FromProfile(*s.Profile)
		res.Profile = &p
	}
	res.Error = s.Error
	return res
}

// ProfileForm binds the text fields of PUT /api/profile. Absent fields keep their value.
type ProfileForm struct {
	Nome   *string `form:"nome"`
	Sexo   *string `form:"sexo" binding:"omitempty,oneof=Masculino Feminino Outro"`
	Pais   *string `form:"pais"`
	Estado *string `form:"estado"`
}
