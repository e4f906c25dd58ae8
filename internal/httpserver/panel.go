package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/transport"
)

func (s *Server) GetProfile(c echo.Context) error {
	user, err := s.Users.Profile(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewProfileResponse(user))
}

func (s *Server) PatchProfile(c echo.Context) error {
	var req transport.PatchProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	user, err := s.Users.PatchProfile(c.Request().Context(), auth.UserID(c), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewProfileResponse(user))
}

// DeleteProfile soft-deletes the caller's own account.
func (s *Server) DeleteProfile(c echo.Context) error {
	if err := s.Users.Deactivate(c.Request().Context(), auth.UserID(c)); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "account deleted")
}
