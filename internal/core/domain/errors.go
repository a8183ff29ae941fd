package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrSponsorNotFound = errors.New("sponsor not found")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrInvalidTransaction = errors.New("invalid transaction")
var ErrInvalidInput = errors.New("invalid input")
var ErrStoreUnavailable = errors.New("record store unavailable")
var ErrWatchActive = errors.New("session watch already active")
