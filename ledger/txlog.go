// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/models"
)

// appendTx adds a record to the log, stamping sequence, id and time.
// Records are never modified after this call.
func (s *state) appendTx(account, txType, boxID, amount, status string) models.TransactionRecord {
	s.snap.Seq++
	rec := models.TransactionRecord{
		ID:        s.newTxID(),
		Seq:       s.snap.Seq,
		Account:   account,
		Type:      txType,
		BoxID:     boxID,
		Amount:    amount,
		Status:    status,
		Timestamp: s.now,
	}
	s.snap.Transactions = append(s.snap.Transactions, rec)
	return rec
}

// queryByAccount returns the account's records, most recent first.
func queryByAccount(snap *models.Snapshot, account string) []models.TransactionRecord {
	out := []models.TransactionRecord{}
	for i := len(snap.Transactions) - 1; i >= 0; i-- {
		if snap.Transactions[i].Account == account {
			out = append(out, snap.Transactions[i])
		}
	}
	return out
}

func currencyLabel(sign string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s%s %s", sign, amount.String(), models.CurrencySymbol)
}

func pointsLabel(sign string, n int64) string {
	return fmt.Sprintf("%s%d points", sign, n)
}
