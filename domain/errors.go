package domain

import "errors"

// Sentinel errors returned by the business layer. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid phone number or PIN")
	ErrConflict           = errors.New("already exists")
	ErrInvalidArgument    = errors.New("invalid argument")

	ErrOtpNotFound  = errors.New("no OTP requested for this phone number")
	ErrOtpExpired   = errors.New("OTP has expired")
	ErrOtpMismatch  = errors.New("invalid OTP")
	ErrOtpExhausted = errors.New("maximum OTP attempts exceeded")

	ErrSMSDelivery = errors.New("failed to send SMS")
	ErrUpstream    = errors.New("upstream service failure")
)
