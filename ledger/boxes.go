// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/danielhkuo/trustbox/models"
)

// maxIDAttempts bounds retries when a generated box id collides
const maxIDAttempts = 8

// createBox assigns a fresh id and WAITING status and inserts b as the
// newest box.
func (s *state) createBox(op string, b *models.Box) (*models.Box, error) {
	id := ""
	for i := 0; i < maxIDAttempts; i++ {
		candidate := s.newBoxID()
		if _, err := s.box(op, candidate); err != nil {
			id = candidate
			break
		}
	}
	if id == "" {
		return nil, newError(KindInvalidInput, op, "could not allocate a unique box id")
	}

	b.ID = id
	b.Status = models.BoxWaiting
	b.CreatedAt = s.now
	s.snap.Boxes = append([]*models.Box{b}, s.snap.Boxes...)
	return b, nil
}

func (s *state) box(op, id string) (*models.Box, error) {
	for _, b := range s.snap.Boxes {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, newError(KindNotFound, op, "box %s not found", id)
}

// transition moves a box from expected to next and applies mutate in the
// same step. It fails without touching the box if the box is not in
// expected or next is not a single forward step from expected.
func (s *state) transition(op, id string, expected, next models.BoxStatus, mutate func(*models.Box)) (*models.Box, error) {
	b, err := s.box(op, id)
	if err != nil {
		return nil, err
	}
	if b.Status != expected {
		return nil, newError(KindInvalidTransition, op, "box %s is %s, expected %s", id, b.Status, expected)
	}
	if !expected.Precedes(next) {
		return nil, newError(KindInvalidTransition, op, "cannot move box %s from %s to %s", id, expected, next)
	}
	b.Status = next
	if mutate != nil {
		mutate(b)
	}
	return b, nil
}

func listAll(snap *models.Snapshot) []models.Box {
	out := make([]models.Box, 0, len(snap.Boxes))
	for _, b := range snap.Boxes {
		out = append(out, *b.Clone())
	}
	return out
}

func listByStatus(snap *models.Snapshot, status models.BoxStatus) []models.Box {
	out := []models.Box{}
	for _, b := range snap.Boxes {
		if b.Status == status {
			out = append(out, *b.Clone())
		}
	}
	return out
}
