package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/identity"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
)

var validate = validator.New()

// Handler exposes registration and login endpoints.
type Handler struct {
	ids    *identity.Service
	tokens *Service
	ledger ledger.Ledger
}

// NewHandler builds the auth handler. Registration provisions a zero-balance
// wallet alongside the account.
func NewHandler(ids *identity.Service, tokens *Service, led ledger.Ledger) *Handler {
	return &Handler{ids: ids, tokens: tokens, ledger: led}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// Register creates an account plus its wallet.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.ids.Register(c.UserContext(), identity.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateAccount) {
			return fiber.NewError(http.StatusConflict, "username already exists")
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.ledger.EnsureWallet(c.UserContext(), user.ID); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "provision wallet")
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account_id": user.ID,
		"username":   user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Admin     bool   `json:"admin"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// Login validates credentials and returns a signed access token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.ids.Authenticate(c.UserContext(), identity.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	token, exp, err := h.tokens.Issue(user)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "issue token")
	}

	return c.Status(http.StatusOK).JSON(loginResponse{
		AccountID: user.ID,
		Username:  user.Username,
		Admin:     user.Admin,
		Token:     token,
		ExpiresAt: exp.UTC().Format(time.RFC3339),
	})
}
