// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"hash/fnv"

	"github.com/shopspring/decimal"
)

const (
	surpriseBase     = 50
	surpriseRateBase = 80
	surpriseMin      = 10
	surpriseMax      = 100

	minPointsCost   = 20
	pointsCostRange = 50
)

var stakeWeight = decimal.NewFromInt(1000)

// surpriseScore rates a new box from the publisher's fulfillment rate and
// the stake: 50 + (rate - 80) + stake*1000, floored and clamped to [10, 100].
func surpriseScore(fulfillmentRate int, stake decimal.Decimal) int {
	score := decimal.NewFromInt(int64(surpriseBase + fulfillmentRate - surpriseRateBase)).
		Add(stake.Mul(stakeWeight)).
		Floor()

	switch {
	case score.LessThan(decimal.NewFromInt(surpriseMin)):
		return surpriseMin
	case score.GreaterThan(decimal.NewFromInt(surpriseMax)):
		return surpriseMax
	}
	return int(score.IntPart())
}

// pointsCost derives the cost to open a box from its id, in [20, 70).
func pointsCost(boxID string) int64 {
	h := fnv.New32a()
	h.Write([]byte(boxID))
	return int64(minPointsCost + h.Sum32()%pointsCostRange)
}
