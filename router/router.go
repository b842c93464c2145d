// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/trustbox/cliparse"
	"github.com/danielhkuo/trustbox/handlers"
	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
)

func NewRouter(l *ledger.Ledger, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(l)
	boxHandler := handlers.NewBoxHandler(l)
	votingHandler := handlers.NewVotingHandler(l)
	adminHandler := handlers.NewAdminHandler(l, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /accounts/connect", middleware.WithLogging(accountHandler.Connect))
	mux.HandleFunc("GET /accounts/me", middleware.WithLogging(accountHandler.GetMe))
	mux.HandleFunc("GET /accounts/me/transactions", middleware.WithLogging(accountHandler.GetTransactions))

	// Box lifecycle
	mux.HandleFunc("GET /boxes", middleware.WithLogging(boxHandler.ListBoxes))
	mux.HandleFunc("GET /boxes/{id}", middleware.WithLogging(boxHandler.GetBox))
	mux.HandleFunc("POST /boxes", middleware.WithLogging(boxHandler.Publish))
	mux.HandleFunc("POST /boxes/{id}/open", middleware.WithLogging(boxHandler.Open))
	mux.HandleFunc("POST /boxes/{id}/proof", middleware.WithLogging(boxHandler.SubmitProof))
	mux.HandleFunc("POST /blobs", middleware.WithLogging(boxHandler.CreateBlob))

	// Resolution votes
	mux.HandleFunc("GET /votes", middleware.WithLogging(votingHandler.ListVotes))
	mux.HandleFunc("POST /votes/{id}", middleware.WithLogging(votingHandler.Vote))

	// Ledger administration
	mux.HandleFunc("GET /ledger/stats", middleware.WithLogging(adminHandler.Stats))
	mux.HandleFunc("POST /ledger/reset", middleware.WithLogging(adminHandler.Reset))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("trustbox API v1"))
	})

	return mux
}
