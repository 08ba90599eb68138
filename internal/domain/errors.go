package domain

import "errors"

var (
	ErrMissingData         = errors.New("required sheet data is missing")
	ErrMalformedAmount     = errors.New("monetary value cannot be parsed")
	ErrNoRateMatch         = errors.New("no rate card entry matches")
	ErrUnknownOrganization = errors.New("organization has no directory entry")
	ErrRunNotFound         = errors.New("invoice run not found")
	ErrInvalidPeriod       = errors.New("invalid billing period")
	ErrInvalidInvoiceDate  = errors.New("invalid invoice date")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrRenderFailed        = errors.New("invoice rendering failed")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
