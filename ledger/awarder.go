// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/danielhkuo/trustbox/models"
)

type medalRule struct {
	medal     models.MedalType
	completed int // completed boxes published by the account
}

var medalRules = []medalRule{
	{medal: models.MedalBronze, completed: 3},
}

// completedBy counts COMPLETED boxes published by addr.
func completedBy(snap *models.Snapshot, addr string) int {
	n := 0
	for _, b := range snap.Boxes {
		if b.Publisher == addr && b.Status == models.BoxCompleted {
			n++
		}
	}
	return n
}

// awardMedals grants every medal whose threshold the publisher has reached
// and returns the ones newly granted. Calling it again grants nothing.
func (s *state) awardMedals(op, addr string) ([]models.MedalType, error) {
	completed := completedBy(s.snap, addr)

	var granted []models.MedalType
	for _, rule := range medalRules {
		if completed < rule.completed {
			continue
		}
		added, err := s.awardMedal(op, addr, rule.medal)
		if err != nil {
			return nil, err
		}
		if added {
			granted = append(granted, rule.medal)
		}
	}
	return granted, nil
}
