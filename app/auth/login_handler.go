package auth

import (
	"catalog/pkg/auth"
	"catalog/pkg/httperror"
	"context"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the configured admin identity: a single user whose
// password is stored only as a bcrypt hash.
type Credentials struct {
	Username     string
	PasswordHash string
}

type LoginHandler struct {
	credentials Credentials
	jwtSecret   string
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
	Token   string    `json:"token"`
}

type LoginUser struct {
	Username string `json:"username"`
}

func NewLoginHandler(credentials Credentials, jwtSecret string) *LoginHandler {
	return &LoginHandler{
		credentials: credentials,
		jwtSecret:   jwtSecret,
	}
}

func (h LoginHandler) Handle(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(req); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return nil, httperror.BadRequest(
				"auth.login.validation_failed",
				"Validation failed for the request",
				ve.Error(),
			)
		}

		return nil, httperror.InternalServerError(
			"auth.login.validation_error",
			"An unexpected validation error occurred",
			nil,
		)
	}

	if req.Username != h.credentials.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.credentials.PasswordHash), []byte(req.Password)) != nil {
		return nil, httperror.Unauthorized(
			"auth.login.invalid_credentials",
			"Invalid credentials",
			nil,
		)
	}

	token, err := auth.GenerateToken(h.jwtSecret, req.Username)
	if err != nil {
		return nil, httperror.InternalServerError(
			"auth.login.token_failed",
			"Failed to issue session token",
			nil,
		)
	}

	return &LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    LoginUser{Username: req.Username},
		Token:   token,
	}, nil
}
