// Package leaderboard ranks run records into a display order.
//
// Practice leaderboards list every qualifying run; contest leaderboards
// collapse to each user's most recent run first. Ranking is by final
// score descending, then creation time descending. Rank is positional.
package leaderboard

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one rankable run. ID must be monotonically assigned by the
// store so that it is a valid tie-break for equal creation times.
type Row struct {
	ID         int64
	UserUUID   uuid.UUID
	Username   string
	CenterID   *int64
	CenterName string
	Wpm        decimal.Decimal
	Accuracy   decimal.Decimal
	FinalScore decimal.Decimal
	Suspicious bool
	CreatedAt  time.Time
}

type Options struct {
	// CollapseLatestPerUser keeps only each user's most recent row
	// before ranking. Contest leaderboards set this; practice ones
	// do not.
	CollapseLatestPerUser bool
	// Limit truncates the ranked result. Zero means no truncation.
	Limit int
}

// PracticeLimit is how many rows the global practice leaderboard shows.
const PracticeLimit = 200

// Resolve orders rows into their display sequence. The input is not
// mutated; an empty input resolves to an empty sequence.
func Resolve(rows []Row, opts Options) []Row {
	res := make([]Row, len(rows))
	copy(res, rows)

	if opts.CollapseLatestPerUser {
		res = collapseLatestPerUser(res)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].FinalScore.Equal(res[j].FinalScore) {
			return res[i].FinalScore.GreaterThan(res[j].FinalScore)
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})

	if opts.Limit > 0 && len(res) > opts.Limit {
		res = res[:opts.Limit]
	}

	return res
}

// FilterCenter returns only the rows recorded at the given center.
func FilterCenter(rows []Row, centerID int64) []Row {
	res := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.CenterID != nil && *r.CenterID == centerID {
			res = append(res, r)
		}
	}
	return res
}

// collapseLatestPerUser keeps, per user, the row with the greatest
// CreatedAt, ties broken by the greatest ID (latest insert wins).
func collapseLatestPerUser(rows []Row) []Row {
	latest := make(map[uuid.UUID]Row, len(rows))
	order := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		prev, ok := latest[r.UserUUID]
		if !ok {
			latest[r.UserUUID] = r
			order = append(order, r.UserUUID)
			continue
		}
		if r.CreatedAt.After(prev.CreatedAt) ||
			(r.CreatedAt.Equal(prev.CreatedAt) && r.ID > prev.ID) {
			latest[r.UserUUID] = r
		}
	}
	res := make([]Row, 0, len(latest))
	for _, u := range order {
		res = append(res, latest[u])
	}
	return res
}
