// Package auth contiene DTOs para endpoints de autenticación.
package auth

import "github.com/dropDatabas3/punkauth/internal/http/dto/users"

// SignupRequest representa la solicitud de registro.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest representa la solicitud de login por password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse representa la respuesta de signup, login y refresh:
// el usuario sanitizado más el par de tokens.
type AuthResponse struct {
	User         users.UserDTO `json:"user"`
	Token        string        `json:"token"`
	RefreshToken string        `json:"refreshToken"`
}

// ForgotPasswordRequest pide el mail de reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest canjea el token de reset.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// VerifyEmailRequest canjea el token de verificación.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// MessageResponse es la respuesta genérica de los flujos sin payload.
type MessageResponse struct {
	Message string `json:"message"`
}
