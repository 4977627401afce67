package service

import "errors"

var (
	ErrDuplicateIdentity    = errors.New("duplicate_identity")
	ErrInvalidRegistration  = errors.New("invalid_registration")
	ErrAuthenticationFailed = errors.New("authentication_failed")

	// ErrStoreUnavailable wraps storage failures that are not part of the
	// domain outcome, such as a closed or unreachable database.
	ErrStoreUnavailable = errors.New("store_unavailable")

	ErrInvalidLecture      = errors.New("invalid_lecture")
	ErrMenuSubjectNotFound = errors.New("menu_subject_not_found")
	ErrMenuDuplicate       = errors.New("menu_duplicate")
	ErrInvalidMenuLabel    = errors.New("invalid_menu_label")
)
