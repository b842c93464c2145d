// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

var half = decimal.RequireFromString("0.5")

// settle splits a box stake for a resolution. On approval everything goes
// back to the publisher. On rejection half goes to the opener and the rest
// is burnt; with no opener account the opener's half is burnt as well.
// The parts always sum to the stake.
func settle(stake decimal.Decimal, approve, openerExists bool) (returned, toOpener, burnt decimal.Decimal) {
	if approve {
		return stake, decimal.Zero, decimal.Zero
	}
	if openerExists {
		toOpener = stake.Mul(half)
	}
	return decimal.Zero, toOpener, stake.Sub(toOpener)
}

// resolve settles a VOTING box. The box moves to COMPLETED or FAILED at most
// once; the transition guard rejects any later call.
func (s *state) resolve(op, caller, boxID string, approve bool) (models.Settlement, error) {
	b, err := s.box(op, boxID)
	if err != nil {
		return models.Settlement{}, err
	}
	if _, err := s.account(op, caller); err != nil {
		return models.Settlement{}, err
	}
	if b.Publisher == caller {
		return models.Settlement{}, newError(KindSelfDealing, op, "publisher cannot vote on own box %s", boxID)
	}
	if b.Status != models.BoxVoting {
		return models.Settlement{}, newError(KindInvalidTransition, op, "box %s is %s, expected %s", boxID, b.Status, models.BoxVoting)
	}

	openerExists := false
	if b.Opener != nil {
		_, openerExists = s.snap.Accounts[*b.Opener]
	}
	returned, toOpener, burnt := settle(b.Stake, approve, openerExists)

	next := models.BoxFailed
	verdict := "reject"
	if approve {
		next = models.BoxCompleted
		verdict = "approve"
	}

	voteTx := s.appendTx(caller, models.TxVote, boxID, verdict, models.TxStatusRecorded)
	settlement := models.Settlement{
		Approved:   approve,
		ResolvedBy: caller,
		Returned:   returned,
		ToOpener:   toOpener,
		Burnt:      burnt,
		ResolvedAt: s.now,
	}

	b, err = s.transition(op, boxID, models.BoxVoting, next, func(b *models.Box) {
		txID := voteTx.ID
		b.SettlementTx = &txID
		st := settlement
		b.Settlement = &st
	})
	if err != nil {
		return models.Settlement{}, err
	}

	if returned.IsPositive() {
		if err := s.credit(op, b.Publisher, returned); err != nil {
			return models.Settlement{}, err
		}
		s.appendTx(b.Publisher, models.TxStakeRelease, boxID, currencyLabel("+", returned), models.TxStatusSettled)
	}
	if toOpener.IsPositive() {
		if err := s.credit(op, *b.Opener, toOpener); err != nil {
			return models.Settlement{}, err
		}
		s.appendTx(*b.Opener, models.TxSlashReward, boxID, currencyLabel("+", toOpener), models.TxStatusSettled)
	}
	s.snap.Burnt = s.snap.Burnt.Add(burnt)

	// Seed or imported boxes may name a publisher without an account.
	if _, ok := s.snap.Accounts[b.Publisher]; ok {
		if err := s.recordOutcome(op, b.Publisher, approve); err != nil {
			return models.Settlement{}, err
		}
		if approve {
			if _, err := s.awardMedals(op, b.Publisher); err != nil {
				return models.Settlement{}, err
			}
		}
	}
	return settlement, nil
}
