package routes

import (
	"net/http"

	"Finboard/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SearchUsers(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	users, err := h.UserService.Search(c.Request.Context(), userID, c.Query("query"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.UserSearchResponse{Users: users})
}

func (h *Handler) UpdateUserName(c *gin.Context) {
	var body contracts.UserUpdateNameRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.UserService.UpdateName(c.Request.Context(), userID, body.FirstName, body.LastName)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "name updated", contracts.NewUserResponse(updated))
}

func (h *Handler) UpdateUserPassword(c *gin.Context) {
	var body contracts.UserUpdatePasswordRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	err = h.UserService.UpdatePassword(c.Request.Context(), userID, body.CurrentPassword, body.NewPassword, body.ConfirmPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "password updated", nil)
}
