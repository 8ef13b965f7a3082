package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrCatalogLoad         = errors.New("catalog load failed")
	ErrInvalidDateRange    = errors.New("end date is before start date")
)
