package handlers

import (
	"net/http"

	"github.com/SscSPs/records_management_app/internal/authz"
	portssvc "github.com/SscSPs/records_management_app/internal/core/ports/services"
	"github.com/SscSPs/records_management_app/internal/dto"
	"github.com/SscSPs/records_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers the self-service and admin account routes.
func registerUserRoutes(rg *gin.RouterGroup, checker middleware.CapabilityChecker, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	me := rg.Group("/users/me")
	{
		me.GET("", middleware.RequireCapability(checker, authz.ObjectSelf, authz.ActionRead), h.getMe)
		me.DELETE("", middleware.RequireCapability(checker, authz.ObjectSelf, authz.ActionDelete), h.deleteMe)
	}

	admin := rg.Group("/admin/users", middleware.RequireCapability(checker, authz.ObjectUsers, authz.ActionManage))
	{
		admin.GET("", h.listUsers)
		admin.POST("", h.createUser)
		admin.DELETE("/:id", h.deleteUser)
		admin.POST("/:id/reset-password", h.resetPassword)
	}
}

// getMe godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteMe godoc
// @Summary Delete own account
// @Description Soft-deletes the caller's account. Records keep their owner.
// @Tags users
// @Produce json
// @Success 200 {object} dto.DeleteResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *userHandler) deleteMe(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteSelf(c.Request.Context(), principal); err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true, Message: "Account deleted"})
}

// listUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// createUser godoc
// @Summary Create a new user
// @Description Creates an account; role defaults to employee
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Username taken"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *userHandler) createUser(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), principal, req)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes another account; admins cannot delete themselves here
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), principal, id); err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true, Message: "User deleted"})
}

// resetPassword godoc
// @Summary Reset a user's password
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/reset-password [post]
func (h *userHandler) resetPassword(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.userService.ResetPassword(c.Request.Context(), principal, id, req.NewPassword); err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true, Message: "Password updated"})
}
