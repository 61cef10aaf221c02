package handlers

import (
	"net/http"
	"strings"

	"roomledger/internal/common"
	"roomledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// TenantHandlers handles tenant HTTP requests
type TenantHandlers struct {
	tenantService services.TenantService
	logger        logrus.FieldLogger
}

// NewTenantHandlers creates a new tenant handlers instance
func NewTenantHandlers(tenantService services.TenantService, logger logrus.FieldLogger) *TenantHandlers {
	return &TenantHandlers{
		tenantService: tenantService,
		logger:        logger,
	}
}

// ListTenants godoc
// @Summary List tenants, newest first
// @Tags tenants
// @Produce json
// @Param roomId query string false "Only tenants of this room"
// @Success 200 {array} models.Tenant
// @Failure 400 {object} common.ErrorResponse
// @Router /tenants [get]
func (h *TenantHandlers) ListTenants(c echo.Context) error {
	var roomID *uuid.UUID
	if raw := strings.TrimSpace(c.QueryParam("roomId")); raw != "" {
		id, err := common.ValidateUUID(raw, "roomId")
		if err != nil {
			return common.SendValidationError(c, "roomId", err.Error())
		}
		roomID = &id
	}

	tenants, err := h.tenantService.List(c.Request().Context(), roomID)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, tenants)
}

// CreateTenant godoc
// @Summary Register a tenant in an existing room
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body services.TenantRequest true "Tenant"
// @Success 201 {object} models.Tenant
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /tenants [post]
func (h *TenantHandlers) CreateTenant(c echo.Context) error {
	var req services.TenantRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	tenant, err := h.tenantService.Create(c.Request().Context(), &req)
	if err != nil {
		return handleTenantWriteError(c, err, h.logger)
	}
	return c.JSON(http.StatusCreated, tenant)
}

// GetTenant godoc
// @Summary Get a tenant with its room
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /tenants/{id} [get]
func (h *TenantHandlers) GetTenant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	tenant, err := h.tenantService.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, tenant)
}

// UpdateTenant godoc
// @Summary Replace a tenant's details
// @Description Every required field must be sent. roomId is optional and moves the tenant.
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID"
// @Param tenant body services.TenantRequest true "Tenant"
// @Success 200 {object} models.Tenant
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /tenants/{id} [patch]
func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var req services.TenantRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return handleTenantWriteError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, tenant)
}

// DeleteTenant godoc
// @Summary Delete a tenant
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID"
// @Success 200 {object} common.MessageResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /tenants/{id} [delete]
func (h *TenantHandlers) DeleteTenant(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.tenantService.Delete(c.Request().Context(), id); err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Tenant deleted successfully"})
}

// RegisterRoutes mounts the tenant endpoints on g.
func (h *TenantHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/tenants", h.ListTenants)
	g.POST("/tenants", h.CreateTenant)
	g.GET("/tenants/:id", h.GetTenant)
	g.PATCH("/tenants/:id", h.UpdateTenant)
	g.DELETE("/tenants/:id", h.DeleteTenant)
}
