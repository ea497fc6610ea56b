package service

import "errors"

var (
	// ErrMissingFields indicates amount or currency was absent.
	ErrMissingFields = errors.New("amount and currency are required")
	// ErrInvalidAmount indicates the amount is not a finite positive number.
	ErrInvalidAmount = errors.New("amount must be a valid number")
	// ErrInvalidPaymentDetails indicates a verification field was absent.
	ErrInvalidPaymentDetails = errors.New("invalid payment details")
	// ErrVerificationFailed indicates the supplied signature did not match.
	ErrVerificationFailed = errors.New("payment verification failed")
)
