package handler

import "github.com/fiori/inventory-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	AuthedUser *domain.User `json:"authed_user"`
	Token      string       `json:"token"`
}

type homeResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	AuthedUser *domain.User `json:"authed_user"`
}

// --- Users ---

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type editUserRequest struct {
	ID              uint      `json:"id"              validate:"required"`
	Username        *string   `json:"username"        validate:"omitempty,min=1"`
	Email           *string   `json:"email"           validate:"omitempty,email"`
	OldPassword     *string   `json:"oldPassword"`
	NewPassword     *string   `json:"newPassword"     validate:"omitempty,min=6"`
	UserPermissions *[]string `json:"userPermissions"`
}

type usersResponse struct {
	Success bool           `json:"success"`
	Users   []*domain.User `json:"users"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type editedUserResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	EditedUser *domain.User `json:"editedUser"`
}

// --- Products ---

type createProductRequest struct {
	Name         string `json:"name"         validate:"required"`
	Description  string `json:"description"`
	SellingPrice *int64 `json:"sellingPrice" validate:"required,gte=0"`
	BuyingPrice  *int64 `json:"buyingPrice"  validate:"required,gte=0"`
	Quantity     *int64 `json:"quantity"     validate:"omitempty,gte=0"`
	Minimum      *int64 `json:"minimum"      validate:"omitempty,gte=0"`
	Maximum      *int64 `json:"maximum"      validate:"omitempty,gte=0"`
	Sold         *int64 `json:"sold"         validate:"omitempty,gte=0"`
	Image        []byte `json:"image"`
}

type editProductRequest struct {
	ID           uint    `json:"id"           validate:"required"`
	Name         *string `json:"name"         validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	SellingPrice *int64  `json:"sellingPrice" validate:"omitempty,gte=0"`
	BuyingPrice  *int64  `json:"buyingPrice"  validate:"omitempty,gte=0"`
	Quantity     *int64  `json:"quantity"`
	Minimum      *int64  `json:"minimum"      validate:"omitempty,gte=0"`
	Maximum      *int64  `json:"maximum"      validate:"omitempty,gte=0"`
	Image        []byte  `json:"image"`
}

type newProductResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	NewProduct *domain.Product `json:"newProduct"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Product *domain.Product `json:"product"`
}

type productsResponse struct {
	Success  bool              `json:"success"`
	Products []*domain.Product `json:"products"`
}

type productPageResponse struct {
	Success  bool              `json:"success"`
	Products []*domain.Product `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	Total    int64             `json:"total"`
}

// --- Orders ---

type cartItemRequest struct {
	ID        uint  `json:"id"        validate:"required"`
	Quantity  int64 `json:"quantity"  validate:"gt=0"`
	Total     int64 `json:"total"     validate:"gte=0"`
	TotalCost int64 `json:"totalCost" validate:"gte=0"`
}

type createOrderRequest struct {
	CartItems     []cartItemRequest `json:"cartItems"     validate:"required,min=1,dive"`
	TotalQuantity *int64            `json:"totalQuantity"`
	Total         *int64            `json:"total"`
	TotalCost     *int64            `json:"totalCost"`
}

type orderResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Order    *domain.Order `json:"order"`
	Replayed bool          `json:"replayed,omitempty"`
}

// --- Sales ---

type periodRequest struct {
	PeriodFrom string `json:"periodFrom" validate:"required"`
	PeriodTo   string `json:"periodTo"   validate:"required"`
}

type ordersResponse struct {
	Success bool            `json:"success"`
	Orders  []*domain.Order `json:"orders"`
}
