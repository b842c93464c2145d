// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies ledger errors so callers can react without parsing text.
type Kind uint32

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInsufficientFunds
	KindInsufficientPoints
	KindSelfDealing
	KindPermissionDenied
	KindInvalidTransition
	KindPersistence
	KindInvalidInput
	KindInvalidAmount
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInsufficientFunds:
		return "InsufficientFunds"
	case KindInsufficientPoints:
		return "InsufficientPoints"
	case KindSelfDealing:
		return "SelfDealing"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindInvalidTransition:
		return "InvalidTransition"
	case KindPersistence:
		return "PersistenceError"
	case KindInvalidInput:
		return "InvalidInput"
	case KindInvalidAmount:
		return "InvalidAmount"
	}
	return "Unknown"
}

// Error is returned by every failing ledger operation.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds}
	ErrInsufficientPoints = &Error{Kind: KindInsufficientPoints}
	ErrSelfDealing        = &Error{Kind: KindSelfDealing}
	ErrPermissionDenied   = &Error{Kind: KindPermissionDenied}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition}
	ErrPersistence        = &Error{Kind: KindPersistence}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrInvalidAmount      = &Error{Kind: KindInvalidAmount}
)

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	m := e.Kind.String()
	if e.Msg != "" {
		m = m + ": " + e.Msg
	}
	if e.Op != "" {
		m = e.Op + ": " + m
	}
	if e.Err != nil {
		m = m + ": " + e.Err.Error()
	}
	return m
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any ledger error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of a ledger error, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
