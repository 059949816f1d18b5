// Package domain contains the core entities of Mind It: the activity catalog,
// rest sessions and their history, chat transcripts and the onboarding forms.
// These types are independent of any UI, storage or network concern.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidActivity   = errors.New("invalid activity")
	ErrNoActiveSession   = errors.New("no active session")
	ErrInvalidTransition = errors.New("invalid screen transition")
	ErrIncompleteForm    = errors.New("form is incomplete")
	ErrInvalidChatMode   = errors.New("invalid chat mode")
	ErrEmptyMessage      = errors.New("message cannot be empty")
	ErrRequestInFlight   = errors.New("a chat request is already in flight")
	ErrMissingCredential = errors.New("missing API credential")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrCorruptTranscript = errors.New("corrupt chat transcript")
)
