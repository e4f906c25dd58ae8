package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Register wires every route onto e. Route groups mirror the three access
// levels: public, authenticated regular users and superusers.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health/live", s.HealthLive)
	e.GET("/health/ready", s.HealthReady)

	// public auth
	e.POST("/auth/send-code", s.SendCode, s.Tokens.RequireGuest)
	e.POST("/auth/verify-code", s.VerifyCode, s.Tokens.RequireGuest)
	e.POST("/auth/forgot/send-code", s.SendForgotCode)
	e.POST("/auth/refresh", s.Refresh)
	e.POST("/auth/logout", s.Logout)

	// public catalog
	e.GET("/product", s.ListProducts)
	e.GET("/product/:slug", s.GetProduct)
	e.GET("/category", s.ListCategories)
	e.GET("/category/:slug", s.GetCategory)
	e.GET("/comments/:slug", s.ListComments)

	// user panel
	panel := e.Group("/auth/panel", s.Tokens.RequireUser)
	panel.GET("", s.GetProfile)
	panel.PATCH("", s.PatchProfile)
	panel.DELETE("", s.DeleteProfile)
	panel.PATCH("/password", s.UpdatePassword)
	panel.GET("/order", s.ListOrders)
	panel.POST("/order/add-items", s.AddCartItem)
	panel.POST("/order/sub-items", s.SubCartItem)
	panel.DELETE("/order/del-items/:id", s.DeleteCartItem)

	// comments require a session; editing is restricted in the service
	comments := e.Group("/comments", s.Tokens.RequireAuth)
	comments.POST("/:slug", s.AddComment)
	comments.PATCH("/:slug/:id", s.UpdateComment)
	comments.DELETE("/:slug/:id", s.DeleteComment)

	// admin auth
	e.POST("/admin/send-code", s.AdminSendCode, s.Tokens.RequireGuest)
	e.POST("/admin/verify-code", s.AdminVerifyCode, s.Tokens.RequireGuest)

	admin := e.Group("/admin", s.Tokens.RequireSuperuser)
	admin.GET("/panel", s.GetProfile)
	admin.PATCH("/panel", s.PatchProfile)
	admin.DELETE("/panel", methodDisabled)

	admin.GET("/panel/users", s.AdminListUsers)
	admin.PATCH("/panel/users/:id", s.AdminPatchUser)
	admin.POST("/panel/users/delete", s.AdminBulkDeleteUsers)

	admin.GET("/products", s.AdminListProducts)
	admin.POST("/products", s.AdminCreateProduct)
	admin.PATCH("/products/:slug", s.AdminPatchProduct)
	admin.DELETE("/products/:slug", s.AdminDeleteProduct)
	admin.POST("/products/delete", s.AdminBulkDeleteProducts)

	admin.GET("/categories", s.AdminListCategories)
	admin.GET("/categories/select", s.AdminSelectCategories)
	admin.POST("/categories", s.AdminCreateCategory)
	admin.PATCH("/categories/:slug", s.AdminPatchCategory)
	admin.DELETE("/categories/:slug", s.AdminDeleteCategory)
	admin.POST("/categories/delete", s.AdminBulkDeleteCategories)
}

// Superuser accounts are never deleted over HTTP.
func methodDisabled(c echo.Context) error {
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "method disabled")
}
