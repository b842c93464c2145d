// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math/rand/v2"
	"net/http"

	"github.com/danielhkuo/trustbox/ledger"
	"github.com/danielhkuo/trustbox/middleware"
	"github.com/danielhkuo/trustbox/models"
)

// Vote context presentation values
const (
	voteDeadline        = "24h"
	voteStatusOpen      = "in_progress"
	maxDisplayFor       = 10
	maxDisplayAgainst   = 2
	voteContextIDPrefix = "VOTE-"
)

type VotingHandler struct {
	ledger *ledger.Ledger
}

func NewVotingHandler(l *ledger.Ledger) *VotingHandler {
	return &VotingHandler{ledger: l}
}

// BuildVoteContext decorates a VOTING box for display. The tallies are
// illustrative only: a single vote resolves the box.
func BuildVoteContext(b models.Box) models.VoteContext {
	vc := models.VoteContext{
		ID:             voteContextIDPrefix + b.ID,
		BoxID:          b.ID,
		PromiseContent: b.PromiseContent,
		Deadline:       voteDeadline,
		VotesFor:       rand.IntN(maxDisplayFor),
		VotesAgainst:   rand.IntN(maxDisplayAgainst),
		Status:         voteStatusOpen,
	}
	if b.ProofRef != nil {
		vc.ProofRef = *b.ProofRef
	}
	return vc
}

// ListVotes handles GET /votes
// Returns every box awaiting a vote with its proof and promise
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	boxes := h.ledger.ListVoting()

	votes := make([]models.VoteContext, 0, len(boxes))
	for _, b := range boxes {
		votes = append(votes, BuildVoteContext(b))
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{Votes: votes})
}

// Vote handles POST /votes/{id}
// Resolves a VOTING box. The box publisher cannot vote.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")
	if boxID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "box id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Approve == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "approve is required")
		return
	}

	caller, ok := resolveCaller(h.ledger, w, r)
	if !ok {
		return
	}

	settlement, err := h.ledger.Vote(r.Context(), caller, boxID, *req.Approve)
	if err != nil {
		ledgerError(w, "vote", err)
		return
	}

	status := models.BoxFailed
	if settlement.Approved {
		status = models.BoxCompleted
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		BoxID:      boxID,
		Status:     status,
		Settlement: settlement,
	})
}
