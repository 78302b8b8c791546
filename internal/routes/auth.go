package routes

import (
	"net/http"

	"Finboard/internal/contracts"
	"Finboard/internal/domain/auth"
	"Finboard/internal/domain/user"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Registration(c *gin.Context) {
	var body contracts.RegisterRequest
	if !h.bindJSON(c, &body) {
		return
	}

	created, err := h.AuthService.Register(c.Request.Context(), auth.Registration{
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, "user registered", created)
}

func (h *Handler) Authenticate(c *gin.Context) {
	var body contracts.LoginRequest
	if !h.bindJSON(c, &body) {
		return
	}

	entity, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, "login successful", entity)
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var body contracts.GoogleAuthRequest
	if !h.bindJSON(c, &body) {
		return
	}

	entity, err := h.AuthService.GoogleLogin(c.Request.Context(), body.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, "login successful", entity)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, message string, u *user.User) {
	token, expiresAt, err := h.JwtService.GenerateToken(u.Id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, status, message, contracts.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      contracts.NewUserResponse(u),
	})
}

func (h *Handler) Health(c *gin.Context) {
	h.respondSuccess(c, http.StatusOK, "ok", nil)
}
