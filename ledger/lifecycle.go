// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

// PublishParams are the publisher-supplied fields of a new box.
type PublishParams struct {
	Description    string
	PromiseContent string
	// Stake defaults to MinStake when zero
	Stake      decimal.Decimal
	PreviewRef string
}

func (p PublishParams) validate(op string) (PublishParams, error) {
	p.Description = strings.TrimSpace(p.Description)
	p.PromiseContent = strings.TrimSpace(p.PromiseContent)
	if p.Description == "" {
		p.Description = defaultDescription
	}
	if p.PromiseContent == "" {
		return p, newError(KindInvalidInput, op, "promise content is required")
	}
	if p.Stake.IsZero() {
		p.Stake = MinStake
	}
	if p.Stake.LessThan(MinStake) {
		return p, newError(KindInvalidAmount, op, "stake %s is below the minimum %s", p.Stake, MinStake)
	}
	if !p.Stake.Equal(p.Stake.Truncate(maxStakeDecimals)) {
		return p, newError(KindInvalidAmount, op, "stake %s has more than %d decimal places", p.Stake, maxStakeDecimals)
	}
	return p, nil
}

func (s *state) publish(op, publisher string, p PublishParams) (*models.Box, error) {
	p, err := p.validate(op)
	if err != nil {
		return nil, err
	}
	acct, err := s.account(op, publisher)
	if err != nil {
		return nil, err
	}
	// score uses the rate as it stood before this box
	score := surpriseScore(acct.FulfillmentRate, p.Stake)

	if err := s.debit(op, publisher, p.Stake); err != nil {
		return nil, err
	}
	if err := s.grantPoints(op, publisher, PublishReward); err != nil {
		return nil, err
	}
	if err := s.incrementPublished(op, publisher); err != nil {
		return nil, err
	}

	b, err := s.createBox(op, &models.Box{
		Publisher:      publisher,
		Description:    p.Description,
		PromiseContent: p.PromiseContent,
		Stake:          p.Stake,
		PreviewRef:     p.PreviewRef,
		SurpriseScore:  score,
	})
	if err != nil {
		return nil, err
	}
	b.PointsCost = pointsCost(b.ID)

	s.appendTx(publisher, models.TxPublishStake, b.ID, currencyLabel("-", p.Stake), models.TxStatusOnChain)
	return b, nil
}

func (s *state) open(op, opener, boxID string) (*models.Box, error) {
	b, err := s.box(op, boxID)
	if err != nil {
		return nil, err
	}
	if b.Publisher == opener {
		return nil, newError(KindSelfDealing, op, "publisher cannot open own box %s", boxID)
	}
	if b.Status != models.BoxWaiting {
		return nil, newError(KindInvalidTransition, op, "box %s is %s, expected %s", boxID, b.Status, models.BoxWaiting)
	}

	if err := s.spendPoints(op, opener, b.PointsCost); err != nil {
		return nil, err
	}
	if err := s.incrementOpened(op, opener); err != nil {
		return nil, err
	}
	// the referral reward is skipped when the publisher has no account
	if _, ok := s.snap.Accounts[b.Publisher]; ok {
		if err := s.grantPoints(op, b.Publisher, OpenReferralReward); err != nil {
			return nil, err
		}
	}

	b, err = s.transition(op, boxID, models.BoxWaiting, models.BoxOpened, func(b *models.Box) {
		o := opener
		b.Opener = &o
	})
	if err != nil {
		return nil, err
	}

	s.appendTx(opener, models.TxOpenBox, boxID, pointsLabel("-", b.PointsCost), models.TxStatusConfirmed)
	return b, nil
}

func (s *state) submitProof(op, caller, boxID, proofRef string) (*models.Box, error) {
	b, err := s.box(op, boxID)
	if err != nil {
		return nil, err
	}
	if b.Publisher != caller {
		return nil, newError(KindPermissionDenied, op, "only the publisher can submit proof for box %s", boxID)
	}
	proofRef = strings.TrimSpace(proofRef)
	if proofRef == "" {
		return nil, newError(KindInvalidInput, op, "proof reference is required")
	}

	b, err = s.transition(op, boxID, models.BoxOpened, models.BoxVoting, func(b *models.Box) {
		ref := proofRef
		b.ProofRef = &ref
	})
	if err != nil {
		return nil, err
	}

	s.appendTx(caller, models.TxSubmitProof, boxID, "awaiting review", models.TxStatusVoting)
	return b, nil
}
