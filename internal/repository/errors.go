package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when a user with the email already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateSKU is returned when a product with the SKU already exists.
	ErrDuplicateSKU = errors.New("a product with this SKU already exists")
	// ErrDuplicateInventory is returned when the tenant already stocks the product.
	ErrDuplicateInventory = errors.New("this product is already in the inventory")
)

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrDuplicateSKU) ||
		errors.Is(err, ErrDuplicateInventory)
}
