// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// CheckAdminPassword compares the submitted password against the configured
// one in constant time. The shared static credential is a placeholder trust
// model, not a security feature.
func CheckAdminPassword(got, want string) bool {
	if want == "" {
		return false
	}
	return hmac.Equal([]byte(got), []byte(want))
}

// NewVoterID derives the stable voter identifier from the team code, the
// voter's name, and the last six digits of the current unix millisecond
// clock. Collisions are possible but accepted; identity stability comes from
// the (name, team) lookup performed before this is ever called.
func NewVoterID(teamCode, name string, now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return fmt.Sprintf("%s-%s-%s", teamCode, strings.ToUpper(name), ms[len(ms)-6:])
}

// ConfirmationNumber generates the ballot receipt shown to the voter:
// CPB-P{phase}-{team code}-{random four digits}. It is cosmetic and never
// used as a lookup key, so collisions are acceptable.
func ConfirmationNumber(phase int, teamCode string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand failure is effectively unreachable; a zero receipt
		// is still a valid receipt.
		return fmt.Sprintf("CPB-P%d-%s-0000", phase, teamCode)
	}
	return fmt.Sprintf("CPB-P%d-%s-%04d", phase, teamCode, n.Int64())
}
