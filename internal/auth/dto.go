package auth

import (
	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/core/common/validation"
)

// LoginDTO carries the email and the identity document used as credential.
type LoginDTO struct {
	Email    string `json:"email"`
	Document string `json:"document"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d LoginDTO) Validate() *appErrors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("document", d.Document).Required()
	return v.Validate()
}

func (d RefreshTokenDTO) Validate() *appErrors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	return v.Validate()
}
