// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey   = errors.New("invalid admin key")
	ErrInvalidCredential = errors.New("invalid credential")
)

// GuestPrefix marks addresses minted for callers without a wallet
const GuestPrefix = "0xguest"

// maxCredentialLen bounds caller-supplied addresses
const maxCredentialLen = 128

// AdminScopeReset is the scope string an admin key is derived for
const AdminScopeReset = "ledger-reset"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NormalizeAddress canonicalizes an external credential into an account address.
// Addresses are case-insensitive, so the canonical form is lower case.
func NormalizeAddress(credential string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(credential))
	if addr == "" || len(addr) > maxCredentialLen {
		return "", ErrInvalidCredential
	}
	for _, r := range addr {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", ErrInvalidCredential
		}
	}
	return addr, nil
}

// GenerateGuestAddress mints an address for a caller that presented no credential
func GenerateGuestAddress() (string, error) {
	id, err := GenerateID(4)
	if err != nil {
		return "", err
	}
	return GuestPrefix + id, nil
}

// IsGuest reports whether addr was minted by GenerateGuestAddress
func IsGuest(addr string) bool {
	return strings.HasPrefix(addr, GuestPrefix)
}

// NewBoxID returns a short box identifier, e.g. BOX-3F2A9C01D4E7.
// Callers must still check for collisions.
func NewBoxID() string {
	u := uuid.New()
	return "BOX-" + strings.ToUpper(hex.EncodeToString(u[:6]))
}

// NewTxID returns a hash-like transaction identifier
func NewTxID() string {
	u := uuid.New()
	return "0x" + hex.EncodeToString(u[:])
}

// NewBlobRef returns an opaque handle for an uploaded proof or preview
func NewBlobRef() string {
	return "blob:" + uuid.NewString()
}

// GenerateAdminKey creates an HMAC-based admin key for a scope
// This is deterministic and verifiable
func GenerateAdminKey(scope, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the scope.
// An empty salt disables admin access entirely.
func ValidateAdminKey(scope, adminKey, salt string) error {
	if salt == "" || adminKey == "" {
		return ErrInvalidAdminKey
	}
	expected := GenerateAdminKey(scope, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}
