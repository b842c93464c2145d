// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

func (s *state) account(op, addr string) (*models.Account, error) {
	a, ok := s.snap.Accounts[addr]
	if !ok {
		return nil, newError(KindNotFound, op, "account %s not found", addr)
	}
	return a, nil
}

// provision creates an account with the welcome balance and points.
// It returns the existing account untouched if addr is already known.
func (s *state) provision(addr string) (*models.Account, bool) {
	if a, ok := s.snap.Accounts[addr]; ok {
		return a, false
	}
	a := &models.Account{
		Address:         addr,
		Balance:         WelcomeBalance,
		Points:          WelcomePoints,
		Medals:          []models.Medal{},
		FulfillmentRate: 100,
		CreatedAt:       s.now,
	}
	s.snap.Accounts[addr] = a
	return a, true
}

func (s *state) debit(op, addr string, amount decimal.Decimal) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return newError(KindInvalidAmount, op, "debit amount must be positive, got %s", amount)
	}
	if a.Balance.LessThan(amount) {
		return newError(KindInsufficientFunds, op, "balance %s is below %s", a.Balance, amount)
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

func (s *state) credit(op, addr string, amount decimal.Decimal) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return newError(KindInvalidAmount, op, "credit amount must be positive, got %s", amount)
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

func (s *state) spendPoints(op, addr string, n int64) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	if n < 0 {
		return newError(KindInvalidAmount, op, "point amount must not be negative, got %d", n)
	}
	if a.Points < n {
		return newError(KindInsufficientPoints, op, "have %d points, need %d", a.Points, n)
	}
	a.Points -= n
	return nil
}

func (s *state) grantPoints(op, addr string, n int64) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	if n < 0 {
		return newError(KindInvalidAmount, op, "point amount must not be negative, got %d", n)
	}
	a.Points += n
	return nil
}

func (s *state) incrementPublished(op, addr string) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	a.PublishedCount++
	return nil
}

func (s *state) incrementOpened(op, addr string) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	a.OpenedCount++
	return nil
}

// awardMedal grants a medal unless the account already holds that type.
// It reports whether a medal was added.
func (s *state) awardMedal(op, addr string, t models.MedalType) (bool, error) {
	a, err := s.account(op, addr)
	if err != nil {
		return false, err
	}
	if a.HasMedal(t) {
		return false, nil
	}
	a.Medals = append(a.Medals, models.Medal{Type: t, EarnedAt: s.now})
	return true, nil
}

// recordOutcome updates the publisher's resolution counters and the
// fulfillment rate derived from them.
func (s *state) recordOutcome(op, addr string, completed bool) error {
	a, err := s.account(op, addr)
	if err != nil {
		return err
	}
	if completed {
		a.CompletedCount++
	} else {
		a.FailedCount++
	}
	a.FulfillmentRate = a.CompletedCount * 100 / (a.CompletedCount + a.FailedCount)
	return nil
}
