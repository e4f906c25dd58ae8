package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/service"
)

type Server struct {
	Repo    *repo.GormRepo
	Auth    *service.AuthService
	Users   *service.UserService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Admin   *service.AdminService
	Tokens  *auth.TokenService
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func okResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Status: "ok", Message: msg})
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{Status: "error", Message: err.Error()})
}

// serviceError translates the service sentinel errors into HTTP responses;
// anything unrecognized surfaces as a 500 through echo's error handler.
func serviceError(c echo.Context, err error) error {
	var capacity *repo.CapacityError
	switch {
	case errors.Is(err, service.ErrValidation):
		return errorResponse(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrInvalidCode):
		return errorResponse(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return errorResponse(c, http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrForbidden):
		return errorResponse(c, http.StatusForbidden, err)
	case errors.Is(err, service.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err)
	case errors.As(err, &capacity):
		return errorResponse(c, http.StatusBadRequest, err)
	default:
		return err
	}
}
