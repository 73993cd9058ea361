// Package report renders ranked profiles for output.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/careerkit/profilescout/internal/discovery"
)

// Header returns the stable CSV header for ranked-profile output.
func Header() []string {
	return []string{"rank", "url", "justification"}
}

// WriteProfilesCSV writes ranked profiles as CSV with the stable Header()
// ordering. Rank is 1-based and encodes the model's ordering, best first.
func WriteProfilesCSV(w io.Writer, ranked discovery.RankedProfiles) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for i, p := range ranked.Profiles {
		if err := cw.Write([]string{
			strconv.Itoa(i + 1),
			p.URL,
			p.Justification,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
