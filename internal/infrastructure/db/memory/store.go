// Package memory provides process-local repositories. Every instance owns its
// own data; nothing is shared between instances.
package memory

import (
	"strconv"
	"strings"
)

// parseSeq maps an external id onto a sequence number. Memory stores have no
// separate native id, so anything that is not a positive integer matches nothing.
func parseSeq(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
