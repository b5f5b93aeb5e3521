package service

import "errors"

// Every operation failure maps to one of these sentinels. The API edge
// matches with errors.Is and folds the result into the boolean status
// shape; nothing here ever propagates as a transport fault.
var (
	ErrNotAuthenticated    = errors.New("authentication required")
	ErrUserNotFound        = errors.New("user not found")
	ErrCardNotFound        = errors.New("payment card not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrRequestNotFound     = errors.New("payment request not found")
	ErrForbidden           = errors.New("operation not permitted")
	ErrInsufficientFunds   = errors.New("insufficient balance")
	ErrInvalidState        = errors.New("payment request is no longer pending")
	ErrInvalidArgument     = errors.New("invalid argument")
)
