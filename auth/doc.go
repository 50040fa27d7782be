// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identity and credential primitives.

# Voter IDs

Voter IDs are deterministic from team code and name plus a creation-time
suffix:

	id := auth.NewVoterID("NOVA47", "Dana", time.Now())
	// NOVA47-DANA-483920

The suffix is the last six digits of the creation time in milliseconds.
IDs are generated once per (name, team) pair and then looked up, so the
time component never needs to be reproducible.

# Confirmation Numbers

Every accepted ballot gets a receipt:

	conf := auth.ConfirmationNumber(2, "NOVA47")
	// CPB-P2-NOVA47-0491

The four-digit tail is random; receipts identify a submission event, not
a stored row.

# Admin Password

CheckAdminPassword compares in constant time and rejects everything when
the configured password is empty:

	ok := auth.CheckAdminPassword(got, cfg.AdminPassword)
*/
package auth
