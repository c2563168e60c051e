package services

// UpdateStreak decides whether a user's daily streak extends, resets or
// starts. Callers must invoke it only on the first completion of a new
// calendar day (guarded by "no DailyStreak row for today"); later completions
// that day only bump the rollup counters.
//
// No distinction is made between a brand-new user and one resuming after a
// gap: both start over at 1.
func UpdateStreak(current, longest int, hadActivityYesterday bool) (int, int) {
	if hadActivityYesterday {
		current++
	} else {
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}
