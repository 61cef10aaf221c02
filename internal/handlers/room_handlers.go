package handlers

import (
	"net/http"
	"strings"

	"roomledger/internal/common"
	"roomledger/internal/models"
	"roomledger/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RoomHandlers handles room HTTP requests
type RoomHandlers struct {
	roomService         services.RoomService
	tenantService       services.TenantService
	registrationService services.RegistrationService
	logger              logrus.FieldLogger
}

// NewRoomHandlers creates a new room handlers instance
func NewRoomHandlers(roomService services.RoomService, tenantService services.TenantService, registrationService services.RegistrationService, logger logrus.FieldLogger) *RoomHandlers {
	return &RoomHandlers{
		roomService:         roomService,
		tenantService:       tenantService,
		registrationService: registrationService,
		logger:              logger,
	}
}

// ListRooms godoc
// @Summary List rooms
// @Description Rooms ordered by name; order=display sorts by floor and room number
// @Tags rooms
// @Produce json
// @Param order query string false "name or display"
// @Success 200 {array} models.Room
// @Router /rooms [get]
func (h *RoomHandlers) ListRooms(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		rooms []*models.Room
		err   error
	)
	switch strings.ToLower(c.QueryParam("order")) {
	case "", "name":
		rooms, err = h.roomService.List(ctx)
	case "display":
		rooms, err = h.roomService.ListForDisplay(ctx)
	default:
		return common.SendValidationError(c, "order", "order must be one of name, display")
	}
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, rooms)
}

// CreateRoom godoc
// @Summary Create a room
// @Tags rooms
// @Accept json
// @Produce json
// @Param room body services.CreateRoomRequest true "Room"
// @Success 201 {object} models.Room
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /rooms [post]
func (h *RoomHandlers) CreateRoom(c echo.Context) error {
	var req services.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	room, err := h.roomService.Create(c.Request().Context(), &req)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusCreated, room)
}

// GetRoom godoc
// @Summary Get a room with its tenants
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} models.Room
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /rooms/{id} [get]
func (h *RoomHandlers) GetRoom(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	room, err := h.roomService.GetByID(c.Request().Context(), id)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, room)
}

// UpdateRoom godoc
// @Summary Update rent and lease period
// @Description Omitted fields are kept. periodTo defaults to periodFrom plus 11 months.
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param room body services.UpdateRoomRequest true "Changes"
// @Success 200 {object} models.Room
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /rooms/{id} [patch]
func (h *RoomHandlers) UpdateRoom(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var req services.UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	room, err := h.roomService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom godoc
// @Summary Delete an empty room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} common.MessageResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /rooms/{id} [delete]
func (h *RoomHandlers) DeleteRoom(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	if err := h.roomService.Delete(c.Request().Context(), id); err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Room deleted successfully"})
}

// ListRoomTenants godoc
// @Summary List the tenants of a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} models.Tenant
// @Failure 400 {object} common.ErrorResponse
// @Router /rooms/{id}/tenants [get]
func (h *RoomHandlers) ListRoomTenants(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	tenants, err := h.tenantService.ListByRoom(c.Request().Context(), id)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, tenants)
}

// EmptyRoom godoc
// @Summary Remove every tenant of a room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} common.MessageResponse
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Router /rooms/{id}/tenants [delete]
func (h *RoomHandlers) EmptyRoom(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	count, err := h.tenantService.EmptyRoom(c.Request().Context(), id)
	if err != nil {
		return HandleServiceError(c, err, h.logger)
	}
	return c.JSON(http.StatusOK, common.MessageResponse{Message: "Room emptied successfully", Count: &count})
}

// RegisterTenants godoc
// @Summary Set rent and period and register tenants in one step
// @Description All tenants are written or none are.
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param registration body services.RegistrationRequest true "Registration"
// @Success 201 {object} models.Room
// @Failure 400 {object} common.ErrorResponse
// @Failure 409 {object} common.ErrorResponse
// @Router /rooms/{id}/registrations [post]
func (h *RoomHandlers) RegisterTenants(c echo.Context) error {
	id, ok, err := parseID(c, "id")
	if !ok {
		return err
	}

	var req services.RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	room, err := h.registrationService.Register(c.Request().Context(), id, &req)
	if err != nil {
		return handleTenantWriteError(c, err, h.logger)
	}
	return c.JSON(http.StatusCreated, room)
}

// RegisterRoutes mounts the room endpoints on g.
func (h *RoomHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/rooms", h.ListRooms)
	g.POST("/rooms", h.CreateRoom)
	g.GET("/rooms/:id", h.GetRoom)
	g.PATCH("/rooms/:id", h.UpdateRoom)
	g.DELETE("/rooms/:id", h.DeleteRoom)
	g.GET("/rooms/:id/tenants", h.ListRoomTenants)
	g.DELETE("/rooms/:id/tenants", h.EmptyRoom)
	g.POST("/rooms/:id/registrations", h.RegisterTenants)
}
