package address

import "errors"

var (
	ErrAddressNotFound   = errors.New("address not found")
	ErrAddressIncomplete = errors.New("name, phone, address line and pincode are required")
	ErrInvalidPincode    = errors.New("pincode must be 6 digits")
	ErrForbidden         = errors.New("not allowed to access this address")
)
