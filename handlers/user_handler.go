package handlers

import (
	"net/http"

	"musicweb-api/helper"
	"musicweb-api/models"
	"musicweb-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       services.UserService
	permissionService services.PermissionService
	Helper            *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, permissionService services.PermissionService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, permissionService: permissionService, Helper: h}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	params := models.UserListParams{
		ListParams: listParams(c, models.UserSortFields),
		Role:       c.Query("role"),
		IsActive:   models.ParseOptionalBool(c.Query("isActive")),
	}

	users, total, err := h.userService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SetPaginationHeaders(c, params.Page, params.Limit, total)
	h.Helper.SendJSON(c, http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendCreated(c, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var patch models.UserPatch
	if !h.Helper.BindJSON(c, &patch) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := identity(c, h.Helper)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id.ID, c.Param("id")); err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendMessage(c, "User deleted successfully")
}

func (h *UserHandler) GetUserPermissions(c *gin.Context) {
	summary, err := h.permissionService.Describe(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, summary)
}

func (h *UserHandler) ReplaceUserPermissions(c *gin.Context) {
	var req models.ReplacePermissionsRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	summary, err := h.permissionService.ReplaceDirect(c.Request.Context(), c.Param("id"), req.Permissions)
	if err != nil {
		h.Helper.SendErrorFromErr(c, err)
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, summary)
}
