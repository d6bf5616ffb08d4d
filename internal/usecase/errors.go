package usecase

import "errors"

// Sentinels shared across usecases. Handlers map these onto HTTP
// statuses; anything unlisted collapses to ErrInternal.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
	ErrProfileMissing = errors.New("profile not found")

	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrIncompleteProfile = errors.New("incomplete profile")

	ErrPartnerNotFound  = errors.New("partner not found")
	ErrSelfRequest      = errors.New("cannot target yourself")
	ErrDuplicateRequest = errors.New("pending request already exists")
	ErrRequestNotFound  = errors.New("partner request not found")
	ErrRequestResponded = errors.New("partner request already responded to")
	ErrForbidden        = errors.New("forbidden")
)
