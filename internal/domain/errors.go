package domain

import "errors"

var (
	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrAlreadyRunning is returned when starting an orchestrator that is not stopped
	ErrAlreadyRunning = errors.New("orchestrator already running")

	// ErrNotRunning is returned when an operation requires a running orchestrator
	ErrNotRunning = errors.New("orchestrator not running")

	// ErrUnknownContract is returned when a contract is not configured for syncing
	ErrUnknownContract = errors.New("unknown contract")

	// ErrInvalidEventArgs is returned when a decoded event lacks an expected argument
	ErrInvalidEventArgs = errors.New("invalid event arguments")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrRecordNotFound is returned when a listing, auction or offer is not indexed
	ErrRecordNotFound = errors.New("record not found")
)
