package match

import (
	"strings"
	"time"

	"github.com/futstats/soccergraph/internal/domain/team"
)

// ComputeID builds the deterministic composite key for a match:
// YYYYMMDD (or "unknown"), the first 10 characters of each normalized team
// name and the first 5 characters of the source tag, joined by underscores.
// Truncation keeps ids short at the cost of rare collisions between
// near-identical team names; that trade-off is accepted. The function
// consults no external state, so re-ingesting the same source always
// produces the same id.
func ComputeID(date *time.Time, home, away, sourceTag string) string {
	datePart := "unknown"
	if date != nil {
		datePart = date.Format("20060102")
	}

	return strings.Join([]string{
		datePart,
		truncate(team.Normalize(home), 10),
		truncate(team.Normalize(away), 10),
		truncate(sourceTag, 5),
	}, "_")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
