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

type BoxHandler struct {
	ledger *ledger.Ledger
}

func NewBoxHandler(l *ledger.Ledger) *BoxHandler {
	return &BoxHandler{ledger: l}
}

// visibleTo withholds the hidden promise from everyone but the publisher
// and the opener
func visibleTo(b models.Box, caller string) models.Box {
	if caller != "" && (b.Publisher == caller || (b.Opener != nil && *b.Opener == caller)) {
		return b
	}
	b.PromiseContent = ""
	return b
}

// ListBoxes handles GET /boxes
// Returns every box, newest first. ?status= filters by lifecycle state.
func (h *BoxHandler) ListBoxes(w http.ResponseWriter, r *http.Request) {
	caller, ok := optionalCaller(w, r)
	if !ok {
		return
	}

	status := models.BoxStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	boxes := []models.Box{}
	for _, b := range h.ledger.ListBoxes() {
		if status != "" && b.Status != status {
			continue
		}
		boxes = append(boxes, visibleTo(b, caller))
	}

	middleware.JSONResponse(w, http.StatusOK, models.BoxesResponse{Boxes: boxes})
}

// GetBox handles GET /boxes/{id}
func (h *BoxHandler) GetBox(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")
	if boxID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "box id is required")
		return
	}

	caller, ok := optionalCaller(w, r)
	if !ok {
		return
	}

	box, err := h.ledger.Box(boxID)
	if err != nil {
		ledgerError(w, "get_box", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, visibleTo(box, caller))
}

// Publish handles POST /boxes
// Escrows the stake from the caller's balance and creates a WAITING box
func (h *BoxHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req models.PublishBoxRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	caller, ok := resolveCaller(h.ledger, w, r)
	if !ok {
		return
	}

	box, err := h.ledger.Publish(r.Context(), caller, ledger.PublishParams{
		Description:    req.Description,
		PromiseContent: req.PromiseContent,
		Stake:          req.Stake,
		PreviewRef:     req.PreviewRef,
	})
	if err != nil {
		ledgerError(w, "publish", err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, box)
}

// Open handles POST /boxes/{id}/open
// Spends the caller's points and reveals the hidden promise
func (h *BoxHandler) Open(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")
	if boxID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "box id is required")
		return
	}

	caller, ok := resolveCaller(h.ledger, w, r)
	if !ok {
		return
	}

	box, err := h.ledger.Open(r.Context(), caller, boxID)
	if err != nil {
		ledgerError(w, "open", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, box)
}

// SubmitProof handles POST /boxes/{id}/proof
// Publisher only. Moves an OPENED box into voting.
func (h *BoxHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	boxID := r.PathValue("id")
	if boxID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "box id is required")
		return
	}

	var req models.SubmitProofRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	caller, ok := resolveCaller(h.ledger, w, r)
	if !ok {
		return
	}

	box, err := h.ledger.SubmitProof(r.Context(), caller, boxID, req.ProofRef)
	if err != nil {
		ledgerError(w, "submit_proof", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, box)
}

// CreateBlob handles POST /blobs
// Hands out an opaque reference for a preview image or proof. The content
// itself is not kept.
func (h *BoxHandler) CreateBlob(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	ref := auth.NewBlobRef()
	slog.Info("blob handle issued", "ref", ref, "caller", caller, "content_length", r.ContentLength)

	middleware.JSONResponse(w, http.StatusCreated, models.BlobHandleResponse{Ref: ref})
}
