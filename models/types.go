package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BoxStatus is the lifecycle state of a promise box.
type BoxStatus string

// Box status constants, in lifecycle order
const (
	BoxWaiting   BoxStatus = "waiting"
	BoxOpened    BoxStatus = "opened"
	BoxVoting    BoxStatus = "voting"
	BoxCompleted BoxStatus = "completed"
	BoxFailed    BoxStatus = "failed"
)

// Valid reports whether s is one of the known states.
func (s BoxStatus) Valid() bool {
	switch s {
	case BoxWaiting, BoxOpened, BoxVoting, BoxCompleted, BoxFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s BoxStatus) Terminal() bool {
	return s == BoxCompleted || s == BoxFailed
}

// Precedes reports whether next is a direct forward successor of s.
func (s BoxStatus) Precedes(next BoxStatus) bool {
	switch s {
	case BoxWaiting:
		return next == BoxOpened
	case BoxOpened:
		return next == BoxVoting
	case BoxVoting:
		return next == BoxCompleted || next == BoxFailed
	}
	return false
}

// Medal types
type MedalType string

const (
	MedalBronze MedalType = "bronze_integrity"
	MedalSilver MedalType = "silver_integrity"
	MedalGold   MedalType = "gold_integrity"
	MedalSharer MedalType = "social_sharer"
)

// Transaction types recorded in the log
const (
	TxAccountCreated = "account_created"
	TxPublishStake   = "publish_stake"
	TxOpenBox        = "open_box"
	TxSubmitProof    = "submit_proof"
	TxVote           = "dao_vote"
	TxStakeRelease   = "stake_release"
	TxSlashReward    = "slash_reward"
)

// Transaction status labels
const (
	TxStatusOnChain   = "on_chain"
	TxStatusConfirmed = "confirmed"
	TxStatusVoting    = "dao_voting"
	TxStatusRecorded  = "recorded"
	TxStatusSettled   = "settled"
)

// CurrencySymbol labels stake amounts in transaction records.
const CurrencySymbol = "ETH"

// Request types

type PublishBoxRequest struct {
	Description    string          `json:"description"`
	PromiseContent string          `json:"promise_content"`
	Stake          decimal.Decimal `json:"stake"`
	PreviewRef     string          `json:"preview_ref"`
}

type SubmitProofRequest struct {
	ProofRef string `json:"proof_ref"`
}

// Approve is a pointer so that a missing field can be told apart from false
type VoteRequest struct {
	Approve *bool `json:"approve"`
}

// Response types

type ConnectResponse struct {
	Address string `json:"address"`
	IsNew   bool   `json:"is_new"`
}

type BoxesResponse struct {
	Boxes []Box `json:"boxes"`
}

type TransactionsResponse struct {
	Transactions []TransactionRecord `json:"transactions"`
}

type VotesResponse struct {
	Votes []VoteContext `json:"votes"`
}

type VoteResponse struct {
	BoxID      string     `json:"box_id"`
	Status     BoxStatus  `json:"status"`
	Settlement Settlement `json:"settlement"`
}

type BlobHandleResponse struct {
	Ref string `json:"ref"`
}

// VoteContext decorates a box pending review with display-only fields.
// Deadline and tallies are not ledger state.
type VoteContext struct {
	ID             string `json:"id"`
	BoxID          string `json:"box_id"`
	ProofRef       string `json:"proof_ref"`
	PromiseContent string `json:"promise_content"`
	Deadline       string `json:"deadline"`
	VotesFor       int    `json:"votes_for"`
	VotesAgainst   int    `json:"votes_against"`
	Status         string `json:"status"`
}

// Domain types

type Medal struct {
	Type     MedalType `json:"type"`
	EarnedAt time.Time `json:"earned_at"`
}

type Account struct {
	Address         string          `json:"address"`
	Balance         decimal.Decimal `json:"balance"`
	Points          int64           `json:"points"`
	Medals          []Medal         `json:"medals"`
	FulfillmentRate int             `json:"fulfillment_rate"`
	PublishedCount  int             `json:"published_count"`
	OpenedCount     int             `json:"opened_count"`
	CompletedCount  int             `json:"completed_count"`
	FailedCount     int             `json:"failed_count"`
	CreatedAt       time.Time       `json:"created_at"`
}

// HasMedal reports whether the account already holds a medal of type t.
func (a *Account) HasMedal(t MedalType) bool {
	for _, m := range a.Medals {
		if m.Type == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	c.Medals = make([]Medal, len(a.Medals))
	copy(c.Medals, a.Medals)
	return &c
}

// Settlement records how a resolved box's stake was distributed.
// Returned + ToOpener + Burnt always equals the box stake.
type Settlement struct {
	Approved   bool            `json:"approved"`
	ResolvedBy string          `json:"resolved_by"`
	Returned   decimal.Decimal `json:"returned"`
	ToOpener   decimal.Decimal `json:"to_opener"`
	Burnt      decimal.Decimal `json:"burnt"`
	ResolvedAt time.Time       `json:"resolved_at"`
}

type Box struct {
	ID             string          `json:"id"`
	Publisher      string          `json:"publisher"`
	Description    string          `json:"description"`
	PromiseContent string          `json:"promise_content,omitempty"`
	Stake          decimal.Decimal `json:"stake"`
	PointsCost     int64           `json:"points_cost"`
	Status         BoxStatus       `json:"status"`
	PreviewRef     string          `json:"preview_ref"`
	CreatedAt      time.Time       `json:"created_at"`
	SurpriseScore  int             `json:"surprise_score"`
	Opener         *string         `json:"opener,omitempty"`
	ProofRef       *string         `json:"proof_ref,omitempty"`
	SettlementTx   *string         `json:"settlement_tx,omitempty"`
	Settlement     *Settlement     `json:"settlement,omitempty"`
}

// Clone returns a deep copy.
func (b *Box) Clone() *Box {
	c := *b
	c.Opener = cloneString(b.Opener)
	c.ProofRef = cloneString(b.ProofRef)
	c.SettlementTx = cloneString(b.SettlementTx)
	if b.Settlement != nil {
		s := *b.Settlement
		c.Settlement = &s
	}
	return &c
}

type TransactionRecord struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Account   string    `json:"account"`
	Type      string    `json:"type"`
	BoxID     string    `json:"box_id"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerStats summarizes value held by the ledger.
type LedgerStats struct {
	Accounts      int               `json:"accounts"`
	Boxes         int               `json:"boxes"`
	Transactions  int               `json:"transactions"`
	Circulating   decimal.Decimal   `json:"circulating"`
	Escrowed      decimal.Decimal   `json:"escrowed"`
	Burnt         decimal.Decimal   `json:"burnt"`
	BoxesByStatus map[BoxStatus]int `json:"boxes_by_status"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
