package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/transport"
)

func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.Cart.ListOrders(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) AddCartItem(c echo.Context) error {
	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	item, err := s.Cart.AddItem(c.Request().Context(), auth.UserID(c), req.ProductID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) SubCartItem(c echo.Context) error {
	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	deleted, item, err := s.Cart.SubItem(c.Request().Context(), auth.UserID(c), req.ProductID)
	if err != nil {
		return serviceError(c, err)
	}
	if deleted {
		return okResponse(c, http.StatusOK, "item removed from cart")
	}
	return c.JSON(http.StatusOK, item)
}

func (s *Server) DeleteCartItem(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := s.Cart.DeleteItem(c.Request().Context(), auth.UserID(c), uint(productID)); err != nil {
		return serviceError(c, err)
	}
	return okResponse(c, http.StatusOK, "item removed from cart")
}
