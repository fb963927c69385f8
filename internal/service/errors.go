package service

import "errors"

var (
	// ErrInvalidTransition rejects a cancel once the order has moved past
	// pending/confirmed.
	ErrInvalidTransition = errors.New("cannot cancel order at this stage")

	// ErrProductUnavailable aborts order creation before anything is
	// persisted: a referenced product is missing or disabled.
	ErrProductUnavailable = errors.New("product not available")

	ErrInvalidProductID = errors.New("invalid product id")

	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)
