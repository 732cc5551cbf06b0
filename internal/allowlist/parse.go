package allowlist

import (
	"strings"

	"github.com/qudata/gatekeeper/internal/domain"
)

// Parse turns a newline-delimited body into an AllowList. Lines are trimmed
// and blank lines dropped; order and duplicates are preserved. In strict mode
// lines that are not SHA-256 hex digests are discarded as well. The second
// result is the number of non-blank lines that were discarded.
func Parse(body []byte, strict bool) (domain.AllowList, int) {
	var (
		list    domain.AllowList
		dropped int
	)
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		token := domain.Token(line)
		if strict && !token.Valid() {
			dropped++
			continue
		}
		list = append(list, token)
	}
	return list, dropped
}

// IsAuthorized reports whether token is an exact element of list.
// An empty list authorizes nobody.
func IsAuthorized(token domain.Token, list domain.AllowList) bool {
	if token == "" {
		return false
	}
	return list.Contains(token)
}
