package janseva

import "errors"

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicantIncomplete = errors.New("applicant name and phone are required")
	ErrInvalidTransition   = errors.New("invalid application status transition")
	ErrForbidden           = errors.New("not allowed to access this application")
)
