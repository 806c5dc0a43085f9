package domain

// Capability names gating the API. Order matters: it is the order in which
// the catalog is reconciled at startup.
const (
	PermGetAllUsers          = "GET_ALL_USERS"
	PermCreateNewUser        = "CREATE_NEW_USER"
	PermDeleteUser           = "DELETE_USER"
	PermEditUser             = "EDIT_USER"
	PermCreateNewProduct     = "CREATE_NEW_PRODUCT"
	PermEditProduct          = "EDIT_PRODUCT"
	PermGetAllProducts       = "GET_ALL_PRODUCTS"
	PermSearchProductsByID   = "SEARCH_PRODUCTS_BY_ID"
	PermSearchProductsByTerm = "SEARCH_PRODUCTS_BY_TERM"
	PermDeleteProduct        = "DELETE_PRODUCT"
	PermCreateOrder          = "CREATE_ORDER"
	PermGetMonthSales        = "GET_MONTH_SALES"
	PermGetPeriodSales       = "GET_PERIOD_SALES"
	PermGetTodaySales        = "GET_TODAY_SALES"
	PermGetUserTodaySales    = "GET_USER_TODAY_SALES"
	PermDeleteOrder          = "DELETE_ORDER"
)

// PermissionCatalog is the fixed set of capabilities known to the system.
var PermissionCatalog = []string{
	PermGetAllUsers,
	PermCreateNewUser,
	PermDeleteUser,
	PermEditUser,
	PermCreateNewProduct,
	PermEditProduct,
	PermGetAllProducts,
	PermSearchProductsByID,
	PermSearchProductsByTerm,
	PermDeleteProduct,
	PermCreateOrder,
	PermGetMonthSales,
	PermGetPeriodSales,
	PermGetTodaySales,
	PermGetUserTodaySales,
	PermDeleteOrder,
}

// SellerPermissions is the grant set given to the bootstrap seller account.
var SellerPermissions = []string{
	PermSearchProductsByID,
	PermSearchProductsByTerm,
	PermCreateOrder,
	PermGetUserTodaySales,
}

var catalogIndex = func() map[string]struct{} {
	m := make(map[string]struct{}, len(PermissionCatalog))
	for _, name := range PermissionCatalog {
		m[name] = struct{}{}
	}
	return m
}()

// IsCatalogPermission reports whether name belongs to PermissionCatalog.
func IsCatalogPermission(name string) bool {
	_, ok := catalogIndex[name]
	return ok
}

// Permission is a named capability stored in the registry.
type Permission struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserPermission grants one Permission to one User. CreatedBy records the
// user that performed the grant.
type UserPermission struct {
	ID           uint `json:"id"`
	UserID       uint `json:"user_id"`
	PermissionID uint `json:"permission_id"`
	CreatedBy    uint `json:"created_by"`
}
