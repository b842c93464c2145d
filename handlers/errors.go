// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
)

// statusForKind maps a ledger error kind to its HTTP status
func statusForKind(kind ledger.Kind) int {
	switch kind {
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindInsufficientFunds, ledger.KindInsufficientPoints:
		return http.StatusPaymentRequired
	case ledger.KindSelfDealing, ledger.KindPermissionDenied:
		return http.StatusForbidden
	case ledger.KindInvalidTransition:
		return http.StatusConflict
	case ledger.KindInvalidInput, ledger.KindInvalidAmount:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ledgerError writes err as a JSON error. Domain errors keep their message;
// anything else is logged and reported generically.
func ledgerError(w http.ResponseWriter, op string, err error) {
	var lerr *ledger.Error
	if !errors.As(err, &lerr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
			return
		}
		slog.Error("unexpected ledger error", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	status := statusForKind(lerr.Kind)
	if status == http.StatusInternalServerError {
		slog.Error("ledger operation failed", "op", op, "kind", lerr.Kind.String(), "error", err)
		middleware.KindErrorResponse(w, status, lerr.Kind.String(), "Failed to save ledger")
		return
	}
	middleware.KindErrorResponse(w, status, lerr.Kind.String(), lerr.Msg)
}
