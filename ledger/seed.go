// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

// Seed account addresses
const (
	SeedAlice   = "0xalice...a111"
	SeedBob     = "0xbob.....b222"
	SeedCharlie = "0xcharlie.c333"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

// seedSnapshot is the fixed dataset a fresh ledger starts with: three
// accounts and four boxes covering the waiting, voting and completed states.
func seedSnapshot() *models.Snapshot {
	snap := models.NewSnapshot()

	snap.Accounts[SeedAlice] = &models.Account{
		Address:         SeedAlice,
		Balance:         decimal.RequireFromString("5.0"),
		Points:          60,
		Medals:          []models.Medal{},
		FulfillmentRate: 100,
		PublishedCount:  2,
		OpenedCount:     1,
		CreatedAt:       day(2023, time.October, 1),
	}
	snap.Accounts[SeedBob] = &models.Account{
		Address:         SeedBob,
		Balance:         decimal.RequireFromString("0.5"),
		Points:          800,
		Medals:          []models.Medal{{Type: models.MedalSharer, EarnedAt: day(2023, time.November, 2)}},
		FulfillmentRate: 0,
		OpenedCount:     5,
		CreatedAt:       day(2023, time.October, 1),
	}
	snap.Accounts[SeedCharlie] = &models.Account{
		Address:         SeedCharlie,
		Balance:         decimal.RequireFromString("2.0"),
		Points:          300,
		Medals:          []models.Medal{{Type: models.MedalBronze, EarnedAt: day(2023, time.October, 15)}},
		FulfillmentRate: 98,
		PublishedCount:  10,
		OpenedCount:     25,
		CompletedCount:  1,
		CreatedAt:       day(2023, time.October, 1),
	}

	// newest first
	snap.Boxes = []*models.Box{
		{
			ID:             "BOX-1025",
			Publisher:      SeedCharlie,
			Description:    "Hand-drawn Eiffel Tower postcard from Paris",
			PromiseContent: "A sketch postcard drawn on the Champ de Mars, with a note on the back.",
			Stake:          decimal.RequireFromString("0.002"),
			PointsCost:     20,
			Status:         models.BoxWaiting,
			PreviewRef:     "https://picsum.photos/400/300?random=2",
			CreatedAt:      day(2023, time.December, 2),
			SurpriseScore:  45,
		},
		{
			ID:             "BOX-1024",
			Publisher:      SeedAlice,
			Description:    "A limited souvenir from Kyoto",
			PromiseContent: "A box of limited-edition matcha sweets, shipped with the receipt.",
			Stake:          decimal.RequireFromString("0.005"),
			PointsCost:     50,
			Status:         models.BoxWaiting,
			PreviewRef:     "https://picsum.photos/400/300?random=1",
			CreatedAt:      day(2023, time.December, 1),
			SurpriseScore:  85,
		},
		{
			ID:             "BOX-1026",
			Publisher:      SeedAlice,
			Description:    "Mystery geek gear, factory sealed",
			PromiseContent: "A set of custom GMK mechanical keyboard keycaps.",
			Stake:          decimal.RequireFromString("0.01"),
			PointsCost:     80,
			Status:         models.BoxVoting,
			PreviewRef:     "https://picsum.photos/400/300?random=4",
			CreatedAt:      day(2023, time.November, 20),
			SurpriseScore:  90,
			Opener:         strPtr(SeedBob),
			ProofRef:       strPtr("https://picsum.photos/400/300?random=3"),
		},
		{
			ID:             "BOX-1027",
			Publisher:      SeedCharlie,
			Description:    "Handmade ceramic mug",
			PromiseContent: "A one-of-a-kind mug with a blue glaze.",
			Stake:          decimal.RequireFromString("0.005"),
			PointsCost:     40,
			Status:         models.BoxCompleted,
			PreviewRef:     "https://picsum.photos/400/300?random=5",
			CreatedAt:      day(2023, time.October, 5),
			SurpriseScore:  70,
			Opener:         strPtr(SeedAlice),
		},
	}
	return snap
}
