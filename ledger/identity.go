// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"

	"github.com/danielhkuo/trustbox/auth"
	"github.com/danielhkuo/trustbox/models"
)

// ResolveIdentity maps a caller credential to its account address,
// provisioning the account on first sight.
func (l *Ledger) ResolveIdentity(ctx context.Context, credential string) (string, error) {
	addr, _, err := l.Connect(ctx, credential)
	return addr, err
}

// Connect is ResolveIdentity that also reports whether the account was
// created by this call. An empty credential mints a guest address.
// Repeated calls for a known credential never write.
func (l *Ledger) Connect(ctx context.Context, credential string) (string, bool, error) {
	// waiting on the credential is the only point an operation may be abandoned
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var addr string
	var err error
	if credential == "" {
		addr, err = auth.GenerateGuestAddress()
		if err != nil {
			return "", false, fmt.Errorf("failed to mint guest address: %w", err)
		}
	} else {
		addr, err = auth.NormalizeAddress(credential)
		if err != nil {
			return "", false, &Error{Kind: KindInvalidInput, Op: "resolve_identity", Msg: "bad credential", Err: err}
		}
	}

	l.mu.RLock()
	_, known := l.snap.Accounts[addr]
	l.mu.RUnlock()
	if known {
		return addr, false, nil
	}

	created := false
	err = l.mutate(ctx, func(st *state) error {
		a, isNew := st.provision(addr)
		if !isNew {
			// another caller provisioned it between the check and the lock
			return nil
		}
		created = true
		st.appendTx(addr, models.TxAccountCreated, "", currencyLabel("+", a.Balance), models.TxStatusConfirmed)
		return nil
	})
	if err != nil {
		return "", false, err
	}

	if created {
		l.log.Info("account created", "address", addr, "guest", auth.IsGuest(addr))
	}
	return addr, created, nil
}
