package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/service"
)

type LoginResponse struct {
	Token string `json:"token" doc:"Bearer token for the Authorization header"`
}

type LoginOutput struct {
	Body LoginResponse
}

type userAuthenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// LoginHandler handles POST /api/login.
type LoginHandler struct {
	UserService userAuthenticator
}

func NewLoginHandler(svc userAuthenticator) *LoginHandler {
	return &LoginHandler{UserService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Log in",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *CredentialsInput) (*LoginOutput, error) {
	token, err := h.UserService.Login(ctx, input.Body.Email, input.Body.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return nil, huma.Error400BadRequest("Email and password required")
	case errors.Is(err, service.ErrUserNotFound):
		return nil, huma.Error400BadRequest("User not found")
	case errors.Is(err, service.ErrInvalidPassword):
		return nil, huma.Error400BadRequest("Invalid password")
	case err != nil:
		return nil, v1.InternalError(ctx, "Login failed", err)
	}

	return &LoginOutput{Body: LoginResponse{Token: token}}, nil
}
