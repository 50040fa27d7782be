// Copyright (c) 2026 Cooperative Impact Lab.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tabulate computes standings from raw ballots.

# Leaderboard

Leaderboard folds every ballot in scope into per-team totals:

	results := tabulate.Leaderboard(teams, votes, bonuses, tabulate.Scope{})

A ranking ballot over n teams pays n points to first place down to 1 for
last. A slider ballot pays each raw 1-5 score to its team. Bonus points
are added on top; scoped views (single phase or criterion) pass nil
bonuses. Ties break by ascending team id, so equal totals produce a
stable order.

# Analytics

Analytics builds the slider reporting grid: one cell per (team, phase,
metric) with average, total, vote count, and the 1-5 score distribution:

	cells := tabulate.Analytics(teams, votes)

Both functions are pure; recomputation from the full ballot set is the
only code path, there are no cached totals to invalidate.
*/
package tabulate
