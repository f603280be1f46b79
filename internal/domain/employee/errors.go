package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrEmailExists        = errors.New("email already registered in this company")
	ErrEmptyBulkSelection = errors.New("bulk update requires at least one employee id")
)
