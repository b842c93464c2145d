// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/trustbox/db"
	"github.com/danielhkuo/trustbox/models"
)

const (
	publisher = "0xpublisher"
	opener    = "0xopener"
	voter     = "0xvoter"

	waitingBox = "BOX-WAITING"
	openedBox  = "BOX-OPENED"
	votingBox  = "BOX-VOTING"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func account(addr, balance string, points int64) *models.Account {
	return &models.Account{
		Address:         addr,
		Balance:         dec(balance),
		Points:          points,
		Medals:          []models.Medal{},
		FulfillmentRate: 100,
		CreatedAt:       testNow,
	}
}

// fixture has one box in each non-terminal state, all staked 0.01 by publisher
func fixture() *models.Snapshot {
	snap := models.NewSnapshot()
	snap.Accounts[publisher] = account(publisher, "2.0", 100)
	snap.Accounts[opener] = account(opener, "0", 100)
	snap.Accounts[voter] = account(voter, "1.0", 0)

	o := opener
	proof := "blob:proof"
	snap.Boxes = []*models.Box{
		{ID: waitingBox, Publisher: publisher, Description: "w", PromiseContent: "pw", Stake: dec("0.01"),
			PointsCost: 50, Status: models.BoxWaiting, CreatedAt: testNow, SurpriseScore: 80},
		{ID: openedBox, Publisher: publisher, Description: "o", PromiseContent: "po", Stake: dec("0.01"),
			PointsCost: 30, Status: models.BoxOpened, CreatedAt: testNow, SurpriseScore: 80, Opener: &o},
		{ID: votingBox, Publisher: publisher, Description: "v", PromiseContent: "pv", Stake: dec("0.01"),
			PointsCost: 30, Status: models.BoxVoting, CreatedAt: testNow, SurpriseScore: 80, Opener: &o, ProofRef: &proof},
	}
	return snap
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLedger(t *testing.T, snap *models.Snapshot) (*Ledger, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	return newLedgerOn(t, store, snap), store
}

func newLedgerOn(t *testing.T, store db.Store, snap *models.Snapshot) *Ledger {
	t.Helper()
	ctx := context.Background()
	if snap != nil {
		require.NoError(t, store.Save(ctx, snap))
	}
	l, err := New(ctx, store, Options{
		Logger: testLogger(),
		Now:    func() time.Time { return testNow },
	})
	require.NoError(t, err)
	return l
}

func balanceOf(t *testing.T, l *Ledger, addr string) decimal.Decimal {
	t.Helper()
	a, err := l.Profile(addr)
	require.NoError(t, err)
	return a.Balance
}

func pointsOf(t *testing.T, l *Ledger, addr string) int64 {
	t.Helper()
	a, err := l.Profile(addr)
	require.NoError(t, err)
	return a.Points
}

func boxStatus(t *testing.T, l *Ledger, id string) models.BoxStatus {
	t.Helper()
	b, err := l.Box(id)
	require.NoError(t, err)
	return b.Status
}

func encoded(t *testing.T, l *Ledger) string {
	t.Helper()
	l.mu.RLock()
	defer l.mu.RUnlock()
	data, err := db.EncodeSnapshot(l.snap)
	require.NoError(t, err)
	return string(data)
}

func TestScenarioA_Publish(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	addr, err := l.ResolveIdentity(ctx, "0xNewcomer")
	require.NoError(t, err)
	require.True(t, balanceOf(t, l, addr).Equal(dec("2.0")))

	before := map[string]decimal.Decimal{}
	for _, a := range []string{publisher, opener, voter} {
		before[a] = balanceOf(t, l, a)
	}
	boxesBefore := len(l.ListBoxes())

	box, err := l.Publish(ctx, addr, PublishParams{
		Description:    "teaser",
		PromiseContent: "a handwritten letter",
		Stake:          dec("0.01"),
		PreviewRef:     "blob:preview",
	})
	require.NoError(t, err)

	assert.Equal(t, models.BoxWaiting, box.Status)
	assert.Equal(t, addr, box.Publisher)
	assert.True(t, box.Stake.Equal(dec("0.01")))
	assert.Equal(t, testNow, box.CreatedAt)
	assert.GreaterOrEqual(t, box.PointsCost, int64(20))
	assert.Less(t, box.PointsCost, int64(70))

	assert.True(t, balanceOf(t, l, addr).Equal(dec("1.99")), "balance %s", balanceOf(t, l, addr))
	assert.Equal(t, WelcomePoints+PublishReward, pointsOf(t, l, addr))
	profile, _ := l.Profile(addr)
	assert.Equal(t, 1, profile.PublishedCount)

	// no other balance moves
	for a, bal := range before {
		assert.True(t, balanceOf(t, l, a).Equal(bal), "balance of %s changed", a)
	}

	boxes := l.ListBoxes()
	require.Len(t, boxes, boxesBefore+1)
	assert.Equal(t, box.ID, boxes[0].ID, "new box must be listed first")

	txs := l.Transactions(addr)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TxPublishStake, txs[0].Type)
	assert.Equal(t, "-0.01 ETH", txs[0].Amount)
	assert.Equal(t, models.TxAccountCreated, txs[1].Type)
}

func TestPublish_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("zero stake defaults to minimum", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		box, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "x"})
		require.NoError(t, err)
		assert.True(t, box.Stake.Equal(MinStake))
		assert.Equal(t, "No Description", box.Description)
	})

	t.Run("trailing zeros beyond the precision limit", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		box, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "x", Stake: dec("0.0010000000000000000000")})
		require.NoError(t, err)
		assert.True(t, box.Stake.Equal(MinStake))
	})

	tests := []struct {
		name   string
		caller string
		params PublishParams
		kind   Kind
	}{
		{"below minimum", publisher, PublishParams{PromiseContent: "x", Stake: dec("0.0001")}, KindInvalidAmount},
		{"negative", publisher, PublishParams{PromiseContent: "x", Stake: dec("-1")}, KindInvalidAmount},
		{"too precise", publisher, PublishParams{PromiseContent: "x", Stake: dec("0.0010000000000000001")}, KindInvalidAmount},
		{"too precise with padding", publisher, PublishParams{PromiseContent: "x", Stake: dec("0.001000000000000000100")}, KindInvalidAmount},
		{"missing promise", publisher, PublishParams{Stake: dec("0.01")}, KindInvalidInput},
		{"insufficient funds", opener, PublishParams{PromiseContent: "x", Stake: dec("0.01")}, KindInsufficientFunds},
		{"unknown account", "0xghost", PublishParams{PromiseContent: "x", Stake: dec("0.01")}, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, store := newTestLedger(t, fixture())
			before := encoded(t, l)
			saves := store.Saves()

			_, err := l.Publish(ctx, tt.caller, tt.params)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)

			assert.Equal(t, before, encoded(t, l), "state must be unchanged")
			assert.Equal(t, saves, store.Saves(), "nothing must be persisted")
		})
	}
}

func TestScenarioB_Open(t *testing.T) {
	l, _ := newTestLedger(t, fixture())

	box, err := l.Open(context.Background(), opener, waitingBox)
	require.NoError(t, err)

	assert.Equal(t, models.BoxOpened, box.Status)
	require.NotNil(t, box.Opener)
	assert.Equal(t, opener, *box.Opener)
	assert.Equal(t, int64(50), pointsOf(t, l, opener))
	assert.Equal(t, int64(105), pointsOf(t, l, publisher))

	profile, _ := l.Profile(opener)
	assert.Equal(t, 1, profile.OpenedCount)

	txs := l.Transactions(opener)
	require.Len(t, txs, 1)
	assert.Equal(t, models.TxOpenBox, txs[0].Type)
	assert.Equal(t, "-50 points", txs[0].Amount)
}

func TestOpen_Failures(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		boxID  string
		kind   Kind
	}{
		{"unknown box", opener, "BOX-NOPE", KindNotFound},
		{"own box", publisher, waitingBox, KindSelfDealing},
		{"own box in other state", publisher, openedBox, KindSelfDealing},
		{"already opened", voter, openedBox, KindInvalidTransition},
		{"not enough points", voter, waitingBox, KindInsufficientPoints},
		{"unknown opener", "0xghost", waitingBox, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t, fixture())
			before := encoded(t, l)

			_, err := l.Open(context.Background(), tt.caller, tt.boxID)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
			assert.Equal(t, before, encoded(t, l))
		})
	}
}

func TestOpen_SelfDealingIsSentinel(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	_, err := l.Open(context.Background(), publisher, waitingBox)
	assert.True(t, errors.Is(err, ErrSelfDealing))
	assert.False(t, errors.Is(err, ErrPermissionDenied))
}

func TestScenarioC_SubmitProof(t *testing.T) {
	ctx := context.Background()

	t.Run("non-publisher is denied", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		_, err := l.SubmitProof(ctx, opener, openedBox, "blob:proof")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPermissionDenied))
		assert.Equal(t, models.BoxOpened, boxStatus(t, l, openedBox))
	})

	t.Run("publisher moves box to voting", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		box, err := l.SubmitProof(ctx, publisher, openedBox, "blob:receipt")
		require.NoError(t, err)
		assert.Equal(t, models.BoxVoting, box.Status)
		require.NotNil(t, box.ProofRef)
		assert.Equal(t, "blob:receipt", *box.ProofRef)

		voting := l.ListVoting()
		ids := []string{}
		for _, b := range voting {
			ids = append(ids, b.ID)
		}
		assert.ElementsMatch(t, []string{openedBox, votingBox}, ids)
	})

	t.Run("wrong state", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		_, err := l.SubmitProof(ctx, publisher, waitingBox, "blob:proof")
		assert.Equal(t, KindInvalidTransition, KindOf(err))
		_, err = l.SubmitProof(ctx, publisher, votingBox, "blob:proof")
		assert.Equal(t, KindInvalidTransition, KindOf(err))
	})

	t.Run("empty proof", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		_, err := l.SubmitProof(ctx, publisher, openedBox, "  ")
		assert.Equal(t, KindInvalidInput, KindOf(err))
		assert.Equal(t, models.BoxOpened, boxStatus(t, l, openedBox))
	})

	t.Run("unknown box", func(t *testing.T) {
		l, _ := newTestLedger(t, fixture())
		_, err := l.SubmitProof(ctx, publisher, "BOX-NOPE", "blob:proof")
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestScenarioD_Approve(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	before := balanceOf(t, l, publisher)
	openerBefore := balanceOf(t, l, opener)

	s, err := l.Vote(ctx, voter, votingBox, true)
	require.NoError(t, err)
	assert.True(t, s.Approved)
	assert.True(t, s.Returned.Equal(dec("0.01")))
	assert.True(t, s.ToOpener.IsZero())
	assert.True(t, s.Burnt.IsZero())

	assert.True(t, balanceOf(t, l, publisher).Equal(before.Add(dec("0.01"))))
	assert.True(t, balanceOf(t, l, opener).Equal(openerBefore))
	assert.Equal(t, models.BoxCompleted, boxStatus(t, l, votingBox))

	box, _ := l.Box(votingBox)
	require.NotNil(t, box.SettlementTx)
	require.NotNil(t, box.Settlement)

	_, err = l.Vote(ctx, voter, votingBox, true)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	_, err = l.Vote(ctx, opener, votingBox, false)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.True(t, balanceOf(t, l, publisher).Equal(before.Add(dec("0.01"))), "second vote must not pay out")

	profile, _ := l.Profile(publisher)
	assert.Equal(t, 1, profile.CompletedCount)
	assert.Equal(t, 100, profile.FulfillmentRate)

	pubTxs := l.Transactions(publisher)
	require.NotEmpty(t, pubTxs)
	assert.Equal(t, models.TxStakeRelease, pubTxs[0].Type)
	assert.Equal(t, "+0.01 ETH", pubTxs[0].Amount)
}

func TestScenarioE_Reject(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	pubBefore := balanceOf(t, l, publisher)

	s, err := l.Vote(ctx, voter, votingBox, false)
	require.NoError(t, err)
	assert.False(t, s.Approved)
	assert.True(t, s.ToOpener.Equal(dec("0.005")))
	assert.True(t, s.Burnt.Equal(dec("0.005")))
	assert.True(t, s.Returned.IsZero())

	assert.True(t, balanceOf(t, l, opener).Equal(dec("0.005")))
	assert.True(t, balanceOf(t, l, publisher).Equal(pubBefore), "publisher receives nothing")
	assert.Equal(t, models.BoxFailed, boxStatus(t, l, votingBox))
	assert.True(t, l.Stats().Burnt.Equal(dec("0.005")))

	profile, _ := l.Profile(publisher)
	assert.Equal(t, 1, profile.FailedCount)
	assert.Equal(t, 0, profile.FulfillmentRate)

	openerTxs := l.Transactions(opener)
	require.Len(t, openerTxs, 1)
	assert.Equal(t, models.TxSlashReward, openerTxs[0].Type)
}

func TestVote_Failures(t *testing.T) {
	tests := []struct {
		name   string
		caller string
		boxID  string
		kind   Kind
	}{
		{"publisher votes", publisher, votingBox, KindSelfDealing},
		{"unknown box", voter, "BOX-NOPE", KindNotFound},
		{"not voting yet", voter, openedBox, KindInvalidTransition},
		{"still waiting", voter, waitingBox, KindInvalidTransition},
		{"unknown voter", "0xstranger", votingBox, KindNotFound},
		{"empty caller", "", votingBox, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t, fixture())
			before := encoded(t, l)
			_, err := l.Vote(context.Background(), tt.caller, tt.boxID, true)
			assert.Equal(t, tt.kind, KindOf(err), "error: %v", err)
			assert.Equal(t, before, encoded(t, l))
		})
	}
}

func TestReject_WithoutOpenerAccountBurnsAll(t *testing.T) {
	snap := fixture()
	ghost := "0xgone"
	snap.Boxes[2].Opener = &ghost
	l, _ := newTestLedger(t, snap)

	s, err := l.Vote(context.Background(), voter, votingBox, false)
	require.NoError(t, err)
	assert.True(t, s.ToOpener.IsZero())
	assert.True(t, s.Burnt.Equal(dec("0.01")))
}

func TestSettleConservation(t *testing.T) {
	stakes := []string{"0.001", "0.01", "0.0033", "1", "7.777777777777777777", "0.000000000000000001", "0.010000000000000001"}
	for _, raw := range stakes {
		stake := dec(raw)
		for _, approve := range []bool{true, false} {
			for _, openerExists := range []bool{true, false} {
				r, o, b := settle(stake, approve, openerExists)
				assert.True(t, r.Add(o).Add(b).Equal(stake), "stake %s approve=%v", raw, approve)
				assert.False(t, r.IsNegative() || o.IsNegative() || b.IsNegative())
				if approve {
					assert.True(t, r.Equal(stake))
				} else if openerExists {
					assert.True(t, o.Equal(stake.Mul(dec("0.5"))), "stake %s opener share %s", raw, o)
				}
			}
		}
	}
}

func TestReject_HalvesFullPrecisionStake(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	b, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "x", Stake: dec("0.010000000000000001")})
	require.NoError(t, err)
	_, err = l.Open(ctx, opener, b.ID)
	require.NoError(t, err)
	_, err = l.SubmitProof(ctx, publisher, b.ID, "blob:proof")
	require.NoError(t, err)

	s, err := l.Vote(ctx, voter, b.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "0.0050000000000000005", s.ToOpener.String())
	assert.Equal(t, "0.0050000000000000005", s.Burnt.String())

	op, err := l.Profile(opener)
	require.NoError(t, err)
	assert.True(t, op.Balance.Equal(dec("0.0050000000000000005")), "opener balance %s", op.Balance)
}

// circulating + escrowed + burnt only changes when new accounts are minted
func TestGlobalValueConservation(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	total := func() decimal.Decimal {
		s := l.Stats()
		return s.Circulating.Add(s.Escrowed).Add(s.Burnt)
	}
	start := total()

	b1, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "p1", Stake: dec("0.3")})
	require.NoError(t, err)
	b2, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "p2", Stake: dec("0.07")})
	require.NoError(t, err)
	assert.True(t, total().Equal(start))

	for _, id := range []string{b1.ID, b2.ID} {
		b, _ := l.Box(id)
		// give the opener enough points whatever the derived cost
		l.mu.Lock()
		l.snap.Accounts[opener].Points += b.PointsCost
		l.mu.Unlock()
		_, err := l.Open(ctx, opener, id)
		require.NoError(t, err)
		_, err = l.SubmitProof(ctx, publisher, id, "blob:p")
		require.NoError(t, err)
	}

	_, err = l.Vote(ctx, voter, b1.ID, true)
	require.NoError(t, err)
	_, err = l.Vote(ctx, voter, b2.ID, false)
	require.NoError(t, err)
	_, err = l.Vote(ctx, voter, votingBox, false)
	require.NoError(t, err)

	assert.True(t, total().Equal(start), "total %s, want %s", total(), start)
	assert.True(t, l.Stats().Burnt.Equal(dec("0.035").Add(dec("0.005"))))
}

func TestStatusTraceIsForwardOnly(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	var trace []models.BoxStatus
	record := func() {
		s := boxStatus(t, l, waitingBox)
		if len(trace) == 0 || trace[len(trace)-1] != s {
			trace = append(trace, s)
		}
	}

	record()
	_, _ = l.SubmitProof(ctx, publisher, waitingBox, "blob:x") // rejected
	_, _ = l.Vote(ctx, voter, waitingBox, true)                 // rejected
	record()
	_, err := l.Open(ctx, opener, waitingBox)
	require.NoError(t, err)
	record()
	_, _ = l.Open(ctx, voter, waitingBox) // rejected
	_, _ = l.Vote(ctx, voter, waitingBox, true)
	record()
	_, err = l.SubmitProof(ctx, publisher, waitingBox, "blob:x")
	require.NoError(t, err)
	record()
	_, _ = l.SubmitProof(ctx, publisher, waitingBox, "blob:y") // rejected
	record()
	_, err = l.Vote(ctx, voter, waitingBox, false)
	require.NoError(t, err)
	record()
	_, _ = l.Vote(ctx, voter, waitingBox, true) // rejected
	record()

	assert.Equal(t, []models.BoxStatus{
		models.BoxWaiting, models.BoxOpened, models.BoxVoting, models.BoxFailed,
	}, trace)
}

func TestTransitionGuard(t *testing.T) {
	st := &state{snap: fixture(), now: testNow}

	_, err := st.transition("t", waitingBox, models.BoxWaiting, models.BoxVoting, nil)
	assert.Equal(t, KindInvalidTransition, KindOf(err), "skips are rejected")

	_, err = st.transition("t", votingBox, models.BoxVoting, models.BoxOpened, nil)
	assert.Equal(t, KindInvalidTransition, KindOf(err), "backward moves are rejected")

	_, err = st.transition("t", openedBox, models.BoxWaiting, models.BoxOpened, nil)
	assert.Equal(t, KindInvalidTransition, KindOf(err), "expected status must match")

	mutated := false
	b, err := st.transition("t", votingBox, models.BoxVoting, models.BoxCompleted, func(*models.Box) { mutated = true })
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Equal(t, models.BoxCompleted, b.Status)
}

func TestMedalAward(t *testing.T) {
	snap := fixture()
	// two completed boxes already on record
	for _, id := range []string{"BOX-C1", "BOX-C2"} {
		snap.Boxes = append(snap.Boxes, &models.Box{
			ID: id, Publisher: publisher, Stake: dec("0.01"), Status: models.BoxCompleted, CreatedAt: testNow,
		})
	}
	l, _ := newTestLedger(t, snap)

	_, err := l.Vote(context.Background(), voter, votingBox, true)
	require.NoError(t, err)

	profile, _ := l.Profile(publisher)
	require.Len(t, profile.Medals, 1)
	assert.Equal(t, models.MedalBronze, profile.Medals[0].Type)
	assert.Equal(t, testNow, profile.Medals[0].EarnedAt)

	// awarding again after the same qualifying event changes nothing
	st := &state{snap: l.snap.Clone(), now: testNow.Add(time.Hour)}
	granted, err := st.awardMedals("award", publisher)
	require.NoError(t, err)
	assert.Empty(t, granted)
	granted, err = st.awardMedals("award", publisher)
	require.NoError(t, err)
	assert.Empty(t, granted)
	assert.Len(t, st.snap.Accounts[publisher].Medals, 1)
}

func TestMedalNotAwardedBelowThreshold(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	_, err := l.Vote(context.Background(), voter, votingBox, true)
	require.NoError(t, err)

	profile, _ := l.Profile(publisher)
	assert.Empty(t, profile.Medals)
}

func TestSurpriseScore(t *testing.T) {
	tests := []struct {
		name  string
		rate  int
		stake string
		want  int
	}{
		{"new account small stake", 100, "0.01", 80},
		{"default stake", 100, "0.001", 71},
		{"floored", 100, "0.0015", 71},
		{"clamped high", 100, "1", 100},
		{"clamped low", 0, "0.001", 10},
		{"mid", 98, "0.002", 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, surpriseScore(tt.rate, dec(tt.stake)))
		})
	}
}

func TestPointsCostRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := "BOX-" + decimal.NewFromInt(int64(i)).String()
		c := pointsCost(id)
		assert.GreaterOrEqual(t, c, int64(20))
		assert.Less(t, c, int64(70))
		assert.Equal(t, c, pointsCost(id), "cost must be deterministic")
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	_, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "a", Stake: dec("0.01")})
	require.NoError(t, err)
	_, err = l.SubmitProof(ctx, publisher, openedBox, "blob:p")
	require.NoError(t, err)

	txs := l.Transactions(publisher)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TxSubmitProof, txs[0].Type)
	assert.Equal(t, models.TxPublishStake, txs[1].Type)
	assert.Greater(t, txs[0].Seq, txs[1].Seq)

	assert.Empty(t, l.Transactions("0xnobody"))
}

func TestConnect(t *testing.T) {
	l, store := newTestLedger(t, fixture())
	ctx := context.Background()

	addr, created, err := l.Connect(ctx, "  0xMixedCase ")
	require.NoError(t, err)
	assert.Equal(t, "0xmixedcase", addr)
	assert.True(t, created)
	saves := store.Saves()

	again, created, err := l.Connect(ctx, "0xMIXEDCASE")
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.False(t, created)
	assert.Equal(t, saves, store.Saves(), "known accounts are not rewritten")
	assert.Len(t, l.Transactions(addr), 1)

	guest, created, err := l.Connect(ctx, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, guest, "0xguest")

	_, _, err = l.Connect(ctx, "bad credential")
	assert.Equal(t, KindInvalidInput, KindOf(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.ResolveIdentity(cancelled, "0xlate")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = l.Profile("0xlate")
	assert.Equal(t, KindNotFound, KindOf(err))
}

// failingStore fails every Save while fail is set
type failingStore struct {
	*db.MemoryStore
	fail atomic.Bool
}

func (s *failingStore) Save(ctx context.Context, snap *models.Snapshot) error {
	if s.fail.Load() {
		return errors.New("disk full")
	}
	return s.MemoryStore.Save(ctx, snap)
}

func TestPersistenceFailureRollsBack(t *testing.T) {
	store := &failingStore{MemoryStore: db.NewMemoryStore()}
	l := newLedgerOn(t, store, fixture())
	ctx := context.Background()

	before := encoded(t, l)
	store.fail.Store(true)

	_, err := l.Publish(ctx, publisher, PublishParams{PromiseContent: "x", Stake: dec("0.5")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
	assert.Equal(t, KindPersistence, KindOf(err))

	_, err = l.Open(ctx, opener, waitingBox)
	assert.Equal(t, KindPersistence, KindOf(err))
	_, err = l.Vote(ctx, voter, votingBox, false)
	assert.Equal(t, KindPersistence, KindOf(err))
	_, err = l.ResolveIdentity(ctx, "0xnew")
	assert.Equal(t, KindPersistence, KindOf(err))

	assert.Equal(t, before, encoded(t, l), "in-memory state must roll back")

	// once the store recovers the same operations succeed
	store.fail.Store(false)
	_, err = l.Open(ctx, opener, waitingBox)
	require.NoError(t, err)
}

func TestProfile_EmptyMedalsEncodeAsList(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	ctx := context.Background()

	addr, err := l.ResolveIdentity(ctx, "0xfresh")
	require.NoError(t, err)
	// a later mutation clones every account again
	_, err = l.Publish(ctx, publisher, PublishParams{PromiseContent: "x", Stake: dec("0.01")})
	require.NoError(t, err)

	for _, a := range []string{addr, publisher, opener} {
		acct, err := l.Profile(a)
		require.NoError(t, err)
		require.NotNil(t, acct.Medals, a)
		data, err := json.Marshal(acct)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"medals":[]`, a)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := db.NewMemoryStore()
	l := newLedgerOn(t, store, fixture())
	ctx := context.Background()

	addr, err := l.ResolveIdentity(ctx, "0xroundtrip")
	require.NoError(t, err)
	_, err = l.Publish(ctx, addr, PublishParams{PromiseContent: "p", Stake: dec("0.02")})
	require.NoError(t, err)
	_, err = l.Open(ctx, opener, waitingBox)
	require.NoError(t, err)
	_, err = l.Vote(ctx, voter, votingBox, false)
	require.NoError(t, err)

	reloaded := newLedgerOn(t, store, nil)
	assert.Equal(t, encoded(t, l), encoded(t, reloaded))
	assert.Equal(t, l.Transactions(addr), reloaded.Transactions(addr))
}

func TestLoadOrInitSeedsOnce(t *testing.T) {
	store := db.NewMemoryStore()
	l := newLedgerOn(t, store, nil)
	assert.Equal(t, 1, store.Saves(), "seed data is persisted immediately")

	boxes := l.ListBoxes()
	require.Len(t, boxes, 4)
	assert.Equal(t, "BOX-1025", boxes[0].ID)
	_, err := l.Profile(SeedBob)
	require.NoError(t, err)
	assert.Len(t, l.ListVoting(), 1)

	// Bob is the opener of the seeded voting box; Charlie can resolve it
	_, err = l.Vote(context.Background(), SeedCharlie, "BOX-1026", true)
	require.NoError(t, err)

	newLedgerOn(t, store, nil)
	assert.Equal(t, 2, store.Saves(), "an existing snapshot is not reseeded")
}

func TestUpgrade(t *testing.T) {
	t.Run("version 0 gains missing collections", func(t *testing.T) {
		old := &models.Snapshot{
			Accounts: map[string]*models.Account{"0xa": {Address: "0xa", Balance: dec("1")}},
			Transactions: []models.TransactionRecord{
				{ID: "t1", Account: "0xa"}, {ID: "t2", Account: "0xa"},
			},
		}
		snap, err := upgrade(old)
		require.NoError(t, err)
		assert.Equal(t, models.SnapshotVersion, snap.Version)
		assert.NotNil(t, snap.Boxes)
		assert.NotNil(t, snap.Accounts["0xa"].Medals)
		assert.Equal(t, uint64(2), snap.Seq)
	})

	t.Run("newer version is refused", func(t *testing.T) {
		future := models.NewSnapshot()
		future.Version = models.SnapshotVersion + 1
		store := db.NewMemoryStore()
		require.NoError(t, store.Save(context.Background(), future))

		_, err := New(context.Background(), store, Options{Logger: testLogger()})
		assert.Equal(t, KindPersistence, KindOf(err))
	})
}

func TestReset(t *testing.T) {
	l, store := newTestLedger(t, fixture())
	require.NoError(t, l.Reset(context.Background()))

	assert.Len(t, l.ListBoxes(), 4)
	_, err := l.Profile(publisher)
	assert.Equal(t, KindNotFound, KindOf(err))

	reloaded := newLedgerOn(t, store, nil)
	assert.Equal(t, encoded(t, l), encoded(t, reloaded))
}

func TestConcurrentOpensSingleWinner(t *testing.T) {
	snap := fixture()
	openers := 10
	for i := 0; i < openers; i++ {
		addr := "0xracer" + decimal.NewFromInt(int64(i)).String()
		snap.Accounts[addr] = account(addr, "0", 100)
	}
	l, _ := newTestLedger(t, snap)

	var wins atomic.Int32
	var transitions atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < openers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			addr := "0xracer" + decimal.NewFromInt(int64(i)).String()
			_, err := l.Open(context.Background(), addr, waitingBox)
			switch KindOf(err) {
			case KindUnknown:
				wins.Add(1)
			case KindInvalidTransition:
				transitions.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one opener wins")
	assert.Equal(t, int32(openers-1), transitions.Load())

	spent := 0
	for i := 0; i < openers; i++ {
		if pointsOf(t, l, "0xracer"+decimal.NewFromInt(int64(i)).String()) < 100 {
			spent++
		}
	}
	assert.Equal(t, 1, spent, "only the winner pays")
}

func TestStats(t *testing.T) {
	l, _ := newTestLedger(t, fixture())
	s := l.Stats()
	assert.Equal(t, 3, s.Accounts)
	assert.Equal(t, 3, s.Boxes)
	assert.True(t, s.Escrowed.Equal(dec("0.03")))
	assert.True(t, s.Circulating.Equal(dec("3.0")))
	assert.Equal(t, 1, s.BoxesByStatus[models.BoxVoting])
}
