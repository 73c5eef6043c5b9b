package cart

import "errors"

var (
	ErrInvalidProduct     = errors.New("product_id is required")
	ErrEmptyCart          = errors.New("cart has no items")
	ErrInvalidPayment     = errors.New("payment method not accepted")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrSubmissionFailed   = errors.New("checkout submission failed")
)
