package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/service"
	"github.com/spacezone/backend/internal/util"
)

func productQueryFromRequest(c echo.Context) service.ProductQuery {
	q := service.ProductQuery{
		Search: c.QueryParam("search"),
		Sort:   c.QueryParam("sort"),
		Page:   util.ParseIntDefault(c.QueryParam("page"), 1),
		Offset: util.ParseIntDefault(c.QueryParam("offset"), util.DefaultPageSize),
	}
	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		q.MaxPrice = &v
	}
	return q
}

func (s *Server) ListProducts(c echo.Context) error {
	page, err := s.Catalog.ListProducts(c.Request().Context(), productQueryFromRequest(c), true)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) GetProduct(c echo.Context) error {
	view, err := s.Catalog.GetProduct(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) ListCategories(c echo.Context) error {
	tree, err := s.Catalog.CategoryTree(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

func (s *Server) GetCategory(c echo.Context) error {
	cat, err := s.Catalog.GetCategory(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}
