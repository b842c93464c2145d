// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/trustbox/auth"
	"github.com/danielhkuo/trustbox/cliparse"
	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
)

// HeaderAdminKey carries the key printed by -print-admin-key
const HeaderAdminKey = "X-Admin-Key"

type AdminHandler struct {
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewAdminHandler(l *ledger.Ledger, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{ledger: l, cfg: cfg}
}

// Stats handles GET /ledger/stats
// Reports circulating, escrowed and burnt value plus box counts
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.ledger.Stats())
}

// Reset handles POST /ledger/reset
// Discards all state and reseeds. Requires X-Admin-Key.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.cfg.AdminKeySalt == "" {
		middleware.ErrorResponse(w, http.StatusForbidden, "Ledger reset is disabled")
		return
	}

	adminKey := r.Header.Get(HeaderAdminKey)
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, HeaderAdminKey+" header required")
		return
	}
	if err := auth.ValidateAdminKey(auth.AdminScopeReset, adminKey, h.cfg.AdminKeySalt); err != nil {
		slog.Warn("rejected ledger reset", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := h.ledger.Reset(r.Context()); err != nil {
		ledgerError(w, "reset", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, h.ledger.Stats())
}
