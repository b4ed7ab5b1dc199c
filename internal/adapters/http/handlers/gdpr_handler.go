package handlers

import (
	"errors"

	"kyc-identity/internal/adapters/http/middleware"
	"kyc-identity/internal/core/domain"
	"kyc-identity/internal/core/services"
	"kyc-identity/internal/pkg/policy"
	"kyc-identity/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GDPRHandler handles data export and erasure endpoints.
type GDPRHandler struct {
	gdprService *services.GDPRService
}

// NewGDPRHandler creates a new GDPR handler.
func NewGDPRHandler(gdprService *services.GDPRService) *GDPRHandler {
	return &GDPRHandler{gdprService: gdprService}
}

// ExportMyData exports the caller's own data
// @Summary Export own data
// @Tags GDPR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /gdpr/export/me [get]
func (h *GDPRHandler) ExportMyData(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return h.export(c, actor.ID)
}

// ExportUserData exports any user's data (self, admin or compliance officer)
// @Summary Export user data
// @Tags GDPR
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /gdpr/export/{id} [get]
func (h *GDPRHandler) ExportUserData(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	targetID := c.Params("id")

	// Compliance officers may export any user's data; otherwise the
	// own-or-admin rule applies.
	if !policy.CanAccessOwnOrAdmin(actor, targetID) && !policy.IsCompliance(actor) {
		return response.Forbidden(c, "Not enough permissions")
	}

	return h.export(c, targetID)
}

// EraseMyData erases the caller's own data
// @Summary Erase own data
// @Tags GDPR
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /gdpr/delete/me [delete]
func (h *GDPRHandler) EraseMyData(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	return h.erase(c, actor.ID)
}

// EraseUserData erases any user's data (self or admin)
// @Summary Erase user data
// @Tags GDPR
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /gdpr/delete/{id} [delete]
func (h *GDPRHandler) EraseUserData(c *fiber.Ctx) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	targetID := c.Params("id")
	if !policy.CanAccessOwnOrAdmin(actor, targetID) {
		return response.Forbidden(c, "Not enough permissions")
	}

	return h.erase(c, targetID)
}

func (h *GDPRHandler) export(c *fiber.Ctx, userID string) error {
	data, err := h.gdprService.ExportUserData(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to export user data")
	}

	return response.Success(c, "User data exported successfully", data)
}

func (h *GDPRHandler) erase(c *fiber.Ctx, userID string) error {
	if err := h.gdprService.EraseUserData(c.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to erase user data")
	}

	return response.Success(c, "User data erased successfully", nil)
}
