package lnbot

import (
	"strconv"
	"strings"
)

// ListParams are the pagination controls for list endpoints. The zero value
// requests the server defaults; a zero field is omitted from the query
// entirely rather than sent as zero.
type ListParams struct {
	// Limit caps the number of results returned.
	Limit int
	// After is the cursor: only results with a number greater than it are
	// returned.
	After int
}

// encode renders the parameters as a query string, limit first, after second.
// Values are plain decimal integers, so no escaping is needed. The ordering
// is fixed, which rules out url.Values (it sorts keys on Encode).
func (p *ListParams) encode() string {
	if p == nil {
		return ""
	}

	var pairs []string
	if p.Limit != 0 {
		pairs = append(pairs, "limit="+strconv.Itoa(p.Limit))
	}
	if p.After != 0 {
		pairs = append(pairs, "after="+strconv.Itoa(p.After))
	}

	return strings.Join(pairs, "&")
}
