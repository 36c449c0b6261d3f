package handlers

import (
	"net/http"

	"musicweb-api/helper"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendCreated(c, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), id.ID)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if !h.Helper.BindJSON(c, &patch) {
		return
	}

	profile, err := h.authService.UpdateProfile(c.Request.Context(), id.ID, patch)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, profile)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	var req models.ChangePasswordRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), id.ID, req); err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendMessage(c, "Password updated successfully")
}
