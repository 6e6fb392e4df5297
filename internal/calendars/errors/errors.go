package errors

import "errors"

var (
	ErrNotFound = errors.New("price calendar not found")

	ErrCouponNotFound = errors.New("coupon not found")
)
