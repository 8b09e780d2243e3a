package handlers

import "strconv"

// parseID validates a path parameter: it must parse as an integer strictly
// greater than zero. Nothing reaches a repository on failure, and no value is
// ever coerced to a default.
func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
