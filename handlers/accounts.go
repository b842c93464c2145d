// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/trustbox/auth"
	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
	"github.com/danielhkuo/trustbox/models"
)

// HeaderAccount carries the caller's account address
const HeaderAccount = "X-Account-Address"

type AccountHandler struct {
	ledger *ledger.Ledger
}

func NewAccountHandler(l *ledger.Ledger) *AccountHandler {
	return &AccountHandler{ledger: l}
}

// callerAddress returns the normalized address from the request header.
// It writes an error response and returns false if the header is missing
// or malformed.
func callerAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	cred := r.Header.Get(HeaderAccount)
	if cred == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, HeaderAccount+" header required")
		return "", false
	}
	addr, err := auth.NormalizeAddress(cred)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid account address")
		return "", false
	}
	return addr, true
}

// optionalCaller is callerAddress for endpoints that also serve anonymous
// callers. An absent header yields "".
func optionalCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Header.Get(HeaderAccount) == "" {
		return "", true
	}
	return callerAddress(w, r)
}

// resolveCaller is callerAddress for mutating endpoints: the account is
// provisioned on first sight.
func resolveCaller(l *ledger.Ledger, w http.ResponseWriter, r *http.Request) (string, bool) {
	if _, ok := callerAddress(w, r); !ok {
		return "", false
	}
	addr, err := l.ResolveIdentity(r.Context(), r.Header.Get(HeaderAccount))
	if err != nil {
		ledgerError(w, "resolve_identity", err)
		return "", false
	}
	return addr, true
}

// Connect handles POST /accounts/connect
// Resolves the caller's account, creating it on first connect. Without the
// address header a guest account is minted.
func (h *AccountHandler) Connect(w http.ResponseWriter, r *http.Request) {
	addr, created, err := h.ledger.Connect(r.Context(), r.Header.Get(HeaderAccount))
	if err != nil {
		ledgerError(w, "connect", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		slog.Info("account connected (new)", "address", addr)
	}

	middleware.JSONResponse(w, status, models.ConnectResponse{
		Address: addr,
		IsNew:   created,
	})
}

// GetMe handles GET /accounts/me
// Returns the caller's balance, points, medals and reputation
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	addr, ok := callerAddress(w, r)
	if !ok {
		return
	}

	account, err := h.ledger.Profile(addr)
	if err != nil {
		ledgerError(w, "profile", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, account)
}

// GetTransactions handles GET /accounts/me/transactions
// Returns the caller's transaction log, most recent first
func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	addr, ok := callerAddress(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TransactionsResponse{
		Transactions: h.ledger.Transactions(addr),
	})
}
