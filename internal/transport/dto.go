package transport

import (
	"time"

	"github.com/spacezone/backend/internal/models"
)

type SendCodeRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ForgotCodeRequest struct {
	Email string `json:"email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh"`
}

type UpdatePasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type PatchProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Avatar       *string `json:"avatar"`
	NationalCode *string `json:"national_code"`
	PhoneNumber  *string `json:"phone_number"`
}

type ProfileResponse struct {
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Avatar       string     `json:"avatar"`
	NationalCode string     `json:"national_code"`
	PhoneNumber  string     `json:"phone_number"`
	LastLogin    *time.Time `json:"last_login"`
}

func NewProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.Avatar,
		NationalCode: u.NationalCode,
		PhoneNumber:  u.PhoneNumber,
		LastLogin:    u.LastLogin,
	}
}

type CartItemRequest struct {
	ProductID uint `json:"product_id"`
}

type CreateProductRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
	Image       string  `json:"image"`
	ExistNumber int     `json:"exist_number"`
	Status      string  `json:"status"`
}

type PatchProductRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *uint    `json:"category_id"`
	Image       *string  `json:"image"`
	ExistNumber *int     `json:"exist_number"`
	Status      *string  `json:"status"`
	ShowItem    *bool    `json:"show_item"`
}

type CreateCategoryRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	ParentID *uint  `json:"parent_id"`
}

type PatchCategoryRequest struct {
	Title    *string `json:"title"`
	ParentID *uint   `json:"parent_id"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

// Page mirrors the list envelope used across catalog and admin endpoints.
type Page[T any] struct {
	CountItem   int64 `json:"count_item"`
	CountPage   int64 `json:"count_page"`
	CurrentPage int   `json:"current_page"`
	Results     []T   `json:"results"`
}

type ProductView struct {
	models.Product
	LatestComments []models.ProductComment `json:"latest_comments"`
}

type ProductPage struct {
	Page[ProductView]
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
