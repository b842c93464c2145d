// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the authority over accounts, promise boxes and the
transaction log.

# Lifecycle

A box moves strictly forward:

	WAITING → OPENED → VOTING → COMPLETED | FAILED

  - Publish escrows the stake from the publisher's balance (WAITING)
  - Open spends the opener's points (OPENED)
  - SubmitProof attaches the publisher's proof (VOTING)
  - Vote settles the stake (COMPLETED or FAILED)

The publisher of a box can neither open it nor vote on it.

# Settlement

On approval the whole stake returns to the publisher. On rejection half goes
to the opener and the remainder is burnt. The three parts always sum to the
stake.

# Atomicity

Every mutating operation works on a copy of the snapshot and swaps it in
only after the store accepted it:

	l, err := ledger.New(ctx, store, ledger.Options{})
	box, err := l.Publish(ctx, addr, ledger.PublishParams{
	    PromiseContent: "a postcard from Kyoto",
	    Stake:          decimal.RequireFromString("0.01"),
	})

A failed save returns an error of kind KindPersistence and leaves the
ledger exactly as it was.

# Errors

All domain failures are *Error values. Match them by kind:

	if errors.Is(err, ledger.ErrSelfDealing) { ... }
	switch ledger.KindOf(err) { ... }
*/
package ledger
