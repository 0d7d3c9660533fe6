package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/trackease/internal/domain"
	v1 "github.com/carson-networks/trackease/internal/handlers/v1"
	"github.com/carson-networks/trackease/internal/service"
)

type RegisterResponse struct {
	ID    string `json:"id" doc:"User UUID"`
	Email string `json:"email" doc:"Normalized email"`
}

type RegisterOutput struct {
	Body RegisterResponse
}

type userRegistrar interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
}

// RegisterHandler handles POST /api/register.
type RegisterHandler struct {
	UserService userRegistrar
}

func NewRegisterHandler(svc userRegistrar) *RegisterHandler {
	return &RegisterHandler{UserService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "register-user",
		Method:      http.MethodPost,
		Path:        "/api/register",
		Summary:     "Register",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *CredentialsInput) (*RegisterOutput, error) {
	created, err := h.UserService.Register(ctx, input.Body.Email, input.Body.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return nil, huma.Error400BadRequest("Email and password required")
	case errors.Is(err, service.ErrEmailTaken):
		return nil, huma.Error400BadRequest("Email already registered")
	case err != nil:
		return nil, v1.InternalError(ctx, "Registration failed", err)
	}

	return &RegisterOutput{Body: RegisterResponse{ID: created.ID.String(), Email: created.Email}}, nil
}
