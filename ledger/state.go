// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

// Protocol constants
var (
	WelcomeBalance = decimal.RequireFromString("2.0")
	MinStake       = decimal.RequireFromString("0.001")
)

const (
	WelcomePoints      int64 = 100
	PublishReward      int64 = 20
	OpenReferralReward int64 = 5

	// maxStakeDecimals matches the smallest on-chain unit (wei)
	maxStakeDecimals = 18

	defaultDescription = "No Description"
)

// state is a working copy of the snapshot for one operation. Every mutation
// goes through it; the ledger swaps it in only after a successful save.
type state struct {
	snap     *models.Snapshot
	now      time.Time
	newBoxID func() string
	newTxID  func() string
}
