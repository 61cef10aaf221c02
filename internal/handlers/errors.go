package handlers

import (
	"errors"

	"roomledger/internal/common"
	"roomledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// HandleServiceError renders a service error in the common error envelope.
// Unclassified errors are logged and hidden behind a generic 500.
func HandleServiceError(c echo.Context, err error, logger logrus.FieldLogger) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return common.SendValidationError(c, vErr.Field, vErr.Message)
	case errors.Is(err, services.ErrRoomOccupied):
		return common.SendClientError(c, common.CodeRoomOccupied, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, err.Error())
	case errors.Is(err, services.ErrConflict):
		return common.SendConflictError(c, err.Error())
	case errors.Is(err, services.ErrStorageUnavailable):
		return common.SendUnavailableError(c, err.Error())
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}).Error("unhandled service error")
	return common.SendServerError(c, "An unexpected error occurred")
}

// handleTenantWriteError reports a missing target room as a bad request
// rather than a missing resource.
func handleTenantWriteError(c echo.Context, err error, logger logrus.FieldLogger) error {
	if errors.Is(err, services.ErrRoomNotFound) {
		return common.SendClientError(c, common.CodeRoomNotFound, err.Error())
	}
	return HandleServiceError(c, err, logger)
}

// parseID reads a uuid path parameter. When ok is false the 400 response
// has already been written and err is the result of writing it.
func parseID(c echo.Context, param string) (id uuid.UUID, ok bool, err error) {
	id, verr := common.ValidateUUID(c.Param(param), param)
	if verr != nil {
		return uuid.Nil, false, common.SendValidationError(c, param, verr.Error())
	}
	return id, true, nil
}

func bindError(c echo.Context) error {
	return common.SendClientError(c, common.CodeClient, "Invalid request body")
}
