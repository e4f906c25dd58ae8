package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/transport"
	"github.com/spacezone/backend/internal/util"
)

// Users

func (s *Server) AdminListUsers(c echo.Context) error {
	page, err := s.Admin.ListUsers(
		c.Request().Context(),
		c.QueryParam("search"),
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("offset"), util.DefaultPageSize),
	)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) AdminPatchUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req transport.PatchProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	user, err := s.Admin.PatchUser(c.Request().Context(), uint(id), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) AdminBulkDeleteUsers(c echo.Context) error {
	return s.bulkDelete(c, s.Admin.BulkDeactivateUsers)
}

// bulkDelete is the shared body of the three soft-delete collection
// endpoints.
func (s *Server) bulkDelete(c echo.Context, fn func(context.Context, []uint) (int64, error)) error {
	var req transport.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	count, err := fn(c.Request().Context(), req.IDs)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "deleted": count})
}

// Products

func (s *Server) AdminListProducts(c echo.Context) error {
	page, err := s.Catalog.ListProducts(c.Request().Context(), productQueryFromRequest(c), false)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) AdminCreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	product, err := s.Admin.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) AdminPatchProduct(c echo.Context) error {
	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	product, err := s.Admin.PatchProduct(c.Request().Context(), c.Param("slug"), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) AdminDeleteProduct(c echo.Context) error {
	if err := s.Admin.DeactivateProduct(c.Request().Context(), c.Param("slug")); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "product deleted")
}

func (s *Server) AdminBulkDeleteProducts(c echo.Context) error {
	return s.bulkDelete(c, s.Admin.BulkDeactivateProducts)
}

// Categories

func (s *Server) AdminListCategories(c echo.Context) error {
	cats, err := s.Admin.ListRootCategories(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (s *Server) AdminSelectCategories(c echo.Context) error {
	cats, err := s.Admin.ListSelectCategories(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (s *Server) AdminCreateCategory(c echo.Context) error {
	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	cat, err := s.Admin.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (s *Server) AdminPatchCategory(c echo.Context) error {
	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	cat, err := s.Admin.PatchCategory(c.Request().Context(), c.Param("slug"), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) AdminDeleteCategory(c echo.Context) error {
	if err := s.Admin.DeactivateCategory(c.Request().Context(), c.Param("slug")); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "category deleted")
}

func (s *Server) AdminBulkDeleteCategories(c echo.Context) error {
	return s.bulkDelete(c, s.Admin.BulkDeactivateCategories)
}
