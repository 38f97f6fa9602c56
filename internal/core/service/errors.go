package service

import "errors"

var (
	ErrUnknownCategory   = errors.New("unknown item category")
	ErrInsufficientFunds = errors.New("insufficient funds for transaction")
	ErrUnknownChannel    = errors.New("invalid processor type")
	ErrNoPrescriptions   = errors.New("no prescriptions found")
	ErrPatientNotFound   = errors.New("patient not found")
	ErrInputNotFound     = errors.New("input file not found")
	ErrFieldCount        = errors.New("line must contain exactly 3 values")
	ErrMarkOutOfRange    = errors.New("mark must be between 0 and 100")
	ErrInvalidSelection  = errors.New("invalid vehicle number")
	ErrWrongKind         = errors.New("selected vehicle is not of the requested kind")
	ErrInvalidDays       = errors.New("invalid number of days")
)
