package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artemkav/moviebox/api/http/presenter"
	"github.com/artemkav/moviebox/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    user
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 200 {object} presenter.MessageResponse
// @Failure 400 {object} presenter.MessageResponse
// @Failure 500 {object} presenter.MessageResponse
// @Router  /user/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Message(c, http.StatusBadRequest, "Invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Message(c, http.StatusBadRequest, "Email and password are required")
	}

	err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Role, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			return presenter.Message(c, http.StatusBadRequest, "User already exists")
		}
		log.Printf("register: %v", err)
		return presenter.Message(c, http.StatusInternalServerError, "Something went wrong")
	}

	return presenter.Message(c, http.StatusOK, "User registered")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Msg      string `json:"msg"`
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   string `json:"userID"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// Login handles user login and issues a token.
// @Summary Login
// @Tags    user
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.MessageResponse
// @Failure 404 {object} presenter.MessageResponse
// @Failure 500 {object} presenter.MessageResponse
// @Router  /user/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Message(c, http.StatusBadRequest, "Invalid JSON payload")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotFound):
			// Unknown email answers 404, wrong password 400; both carry
			// the same message so the two cases stay indistinguishable
			// in the body.
			return presenter.Message(c, http.StatusNotFound, "Wrong credentials")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return presenter.Message(c, http.StatusBadRequest, "Wrong credentials")
		default:
			log.Printf("login: %v", err)
			return presenter.Message(c, http.StatusInternalServerError, "Something went wrong")
		}
	}

	return presenter.JSON(c, http.StatusOK, loginResponse{
		Msg:      "Login successful",
		Token:    result.Token,
		Username: result.User.Name,
		UserID:   result.User.ID.String(),
		Role:     result.User.Role,
		Email:    result.User.Email,
	})
}
