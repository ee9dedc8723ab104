package grid

import "errors"

var (
	ErrNoColumns        = errors.New("grid: no columns declared")
	ErrDuplicateColumn  = errors.New("grid: duplicate column key")
	ErrNoValue          = errors.New("grid: column has no value accessor")
	ErrNoID             = errors.New("grid: no record identifier function")
	ErrUnknownColumn    = errors.New("grid: unknown column")
	ErrNotHideable      = errors.New("grid: column cannot be hidden")
	ErrInvalidPageSize  = errors.New("grid: page size must be positive")
	ErrNoPendingDelete  = errors.New("grid: no delete awaiting confirmation")
	ErrRecordNotFound   = errors.New("grid: record not found")
	ErrUnknownRank      = errors.New("grid: unknown rank")
	ErrUnknownDirection = errors.New("grid: unknown sort direction")
)
