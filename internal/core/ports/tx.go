package ports

import "context"

// Tx exposes repositories bound to a single database transaction.
type Tx interface {
	Users() UserRepository
	Permissions() PermissionRepository
	Products() ProductRepository
	Orders() OrderRepository
}

// TxRunner scopes a unit of work. The transaction commits when fn returns
// nil and rolls back when fn returns an error or panics.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
