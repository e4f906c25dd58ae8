package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/service"
	"github.com/spacezone/backend/internal/transport"
)

func (s *Server) sendCode(c echo.Context, adminFlow bool) error {
	var req transport.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	outcome, err := s.Auth.SendCode(c.Request().Context(), req.Email, req.Password, adminFlow)
	if err != nil {
		return serviceError(c, err)
	}
	return s.sendCodeResponse(c, outcome)
}

func (s *Server) sendCodeResponse(c echo.Context, outcome *service.SendCodeOutcome) error {
	switch outcome.Kind {
	case service.OutcomeThrottled:
		return c.JSON(http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": fmt.Sprintf("please wait %d seconds before requesting a new code", outcome.RetryAfterSeconds),
			"wait":    outcome.RetryAfterSeconds,
		})
	case service.OutcomeRejected:
		// one generic message for bad passwords, disabled accounts and
		// privilege probes alike
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "invalid email or password"})
	case service.OutcomeRegistrationPending:
		return okResponse(c, http.StatusCreated, "account created, verification code sent")
	default:
		return okResponse(c, http.StatusOK, "verification code sent")
	}
}

// SendCode starts the regular login/registration flow.
func (s *Server) SendCode(c echo.Context) error {
	return s.sendCode(c, false)
}

// AdminSendCode is the superuser mirror of SendCode.
func (s *Server) AdminSendCode(c echo.Context) error {
	return s.sendCode(c, true)
}

func (s *Server) SendForgotCode(c echo.Context) error {
	var req transport.ForgotCodeRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	outcome, err := s.Auth.SendForgotCode(c.Request().Context(), req.Email)
	if err != nil {
		return serviceError(c, err)
	}
	return s.sendCodeResponse(c, outcome)
}

func (s *Server) verifyCode(c echo.Context, adminFlow bool) error {
	var req transport.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	outcome, err := s.Auth.VerifyCode(c.Request().Context(), req.Email, req.Code, adminFlow)
	if err != nil {
		return serviceError(c, err)
	}

	if outcome.Registration {
		return okResponse(c, http.StatusOK, outcome.Message)
	}
	return c.JSON(http.StatusOK, outcome.Tokens)
}

func (s *Server) VerifyCode(c echo.Context) error {
	return s.verifyCode(c, false)
}

func (s *Server) AdminVerifyCode(c echo.Context) error {
	return s.verifyCode(c, true)
}

func (s *Server) Refresh(c echo.Context) error {
	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	pair, err := s.Auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (s *Server) Logout(c echo.Context) error {
	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := s.Auth.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "logged out")
}

func (s *Server) UpdatePassword(c echo.Context) error {
	var req transport.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	err := s.Auth.UpdatePassword(c.Request().Context(), auth.UserID(c), req.Password, req.ConfirmPassword)
	if err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "password updated")
}
