package user

import "github.com/google/uuid"

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleLoginDTO carries either an ID token from the browser flow or an
// authorization code to exchange server side.
type GoogleLoginDTO struct {
	IDToken string `json:"id_token"`
	Code    string `json:"code"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

type ResetPasswordDTO struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type UserResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	AuthProvider AuthProvider `json:"auth_provider"`
	Avatar       string       `json:"avatar"`
}

// AuthResponse repeats the user fields at the top level for older clients.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Avatar       string       `json:"avatar"`
	AuthProvider AuthProvider `json:"auth_provider"`
	Message      string       `json:"message"`
}

type MessageResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		AuthProvider: u.AuthProvider,
		Avatar:       u.DisplayAvatar(),
	}
}

func newAuthResponse(u *User, token string) *AuthResponse {
	payload := toUserResponse(u)
	return &AuthResponse{
		AccessToken:  token,
		TokenType:    "bearer",
		User:         payload,
		ID:           payload.ID,
		Name:         payload.Name,
		Email:        payload.Email,
		Avatar:       payload.Avatar,
		AuthProvider: payload.AuthProvider,
		Message:      "Login successful",
	}
}
