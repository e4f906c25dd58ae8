package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/transport"
	"github.com/spacezone/backend/internal/util"
)

func (s *Server) ListComments(c echo.Context) error {
	page, err := s.Catalog.ListComments(
		c.Request().Context(),
		c.Param("slug"),
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("offset"), util.DefaultPageSize),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) AddComment(c echo.Context) error {
	var req transport.CommentRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	comment, err := s.Catalog.AddComment(c.Request().Context(), auth.UserID(c), c.Param("slug"), req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func commentIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (s *Server) UpdateComment(c echo.Context) error {
	id, err := commentIDParam(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req transport.CommentRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	comment, err := s.Catalog.UpdateComment(c.Request().Context(), auth.UserID(c), auth.IsSuperuser(c), id, req.Text)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (s *Server) DeleteComment(c echo.Context) error {
	id, err := commentIDParam(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := s.Catalog.DeleteComment(c.Request().Context(), auth.UserID(c), auth.IsSuperuser(c), id); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "comment deleted")
}
