// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential normalization and identifier generation.

# Addresses

Callers present an external credential (a wallet address). It is
canonicalized by trimming and lower-casing:

	addr, err := auth.NormalizeAddress("0xAlice...A111")  // "0xalice...a111"

Callers without a wallet get a guest address:

	addr, err := auth.GenerateGuestAddress()  // "0xguest" + 8 hex chars

# Identifiers

	auth.NewBoxID()   // BOX-3F2A9C01D4E7
	auth.NewTxID()    // 0x + 32 hex chars
	auth.NewBlobRef() // blob:<uuid>

Box ids are short, so the box store still checks them for collisions.

# Admin Keys

Admin keys use HMAC-SHA256 over a scope string:

	adminKey := auth.GenerateAdminKey(auth.AdminScopeReset, salt)
	err := auth.ValidateAdminKey(auth.AdminScopeReset, adminKey, salt)

The key is URL-safe base64 encoded without padding. An empty salt disables
admin operations.
*/
package auth
