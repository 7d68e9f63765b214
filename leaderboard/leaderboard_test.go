package leaderboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/typingtutor/backend/leaderboard"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func row(id int64, user uuid.UUID, scoreStr string, createdOffset time.Duration) leaderboard.Row {
	d, err := decimal.NewFromString(scoreStr)
	if err != nil {
		panic(err)
	}
	return leaderboard.Row{
		ID:         id,
		UserUUID:   user,
		FinalScore: d,
		CreatedAt:  baseTime.Add(createdOffset),
	}
}

func TestResolveEmpty(t *testing.T) {
	res := leaderboard.Resolve(nil, leaderboard.Options{})
	require.Empty(t, res)

	res = leaderboard.Resolve(nil, leaderboard.Options{CollapseLatestPerUser: true, Limit: 10})
	require.Empty(t, res)
}

func TestCollapseKeepsLatestAttempt(t *testing.T) {
	user := uuid.New()
	rows := []leaderboard.Row{
		row(1, user, "10", 0),
		row(2, user, "90", time.Minute),
		row(3, user, "50", 2*time.Minute),
	}

	res := leaderboard.Resolve(rows, leaderboard.Options{CollapseLatestPerUser: true})
	require.Len(t, res, 1)
	require.Equal(t, int64(3), res[0].ID)
	require.Equal(t, "50", res[0].FinalScore.String())
}

func TestCollapseTieBrokenByMaxID(t *testing.T) {
	user := uuid.New()
	rows := []leaderboard.Row{
		row(5, user, "30", time.Minute),
		row(7, user, "60", time.Minute), // same created_at, later insert
		row(6, user, "45", time.Minute),
	}

	res := leaderboard.Resolve(rows, leaderboard.Options{CollapseLatestPerUser: true})
	require.Len(t, res, 1)
	require.Equal(t, int64(7), res[0].ID)
}

func TestNoCollapseKeepsEveryRun(t *testing.T) {
	user := uuid.New()
	rows := []leaderboard.Row{
		row(1, user, "10", 0),
		row(2, user, "90", time.Minute),
		row(3, user, "50", 2*time.Minute),
	}

	res := leaderboard.Resolve(rows, leaderboard.Options{})
	require.Len(t, res, 3)
	require.Equal(t, int64(2), res[0].ID) // highest score first
}

func TestOrderingScoreDescThenCreatedDesc(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	rows := []leaderboard.Row{
		row(1, a, "30", 0),
		row(2, b, "90", time.Minute),
		row(3, c, "90", 2*time.Minute),
	}

	res := leaderboard.Resolve(rows, leaderboard.Options{})
	require.Len(t, res, 3)
	require.Equal(t, int64(3), res[0].ID) // later of the two 90s first
	require.Equal(t, int64(2), res[1].ID)
	require.Equal(t, int64(1), res[2].ID)
}

func TestLimitTruncatesAfterRanking(t *testing.T) {
	rows := make([]leaderboard.Row, 0, 250)
	for i := 0; i < 250; i++ {
		rows = append(rows, row(int64(i+1), uuid.New(), fmt.Sprintf("%d", i), time.Duration(i)*time.Second))
	}

	res := leaderboard.Resolve(rows, leaderboard.Options{Limit: leaderboard.PracticeLimit})
	require.Len(t, res, 200)
	require.Equal(t, "249", res[0].FinalScore.String())
	require.Equal(t, "50", res[199].FinalScore.String())
}

func TestFilterCenter(t *testing.T) {
	c1, c2 := int64(1), int64(2)
	user := uuid.New()
	r1 := row(1, user, "10", 0)
	r1.CenterID = &c1
	r2 := row(2, user, "20", time.Minute)
	r2.CenterID = &c2
	r3 := row(3, user, "30", 2*time.Minute) // no center

	filtered := leaderboard.FilterCenter([]leaderboard.Row{r1, r2, r3}, c1)
	require.Len(t, filtered, 1)
	require.Equal(t, int64(1), filtered[0].ID)
}

func TestCollapseAfterCenterFilterUsesCenterScopedLatest(t *testing.T) {
	// The latest run overall is at center 2; within center 1 the
	// latest is run 1, which must be the one ranked for center 1.
	c1, c2 := int64(1), int64(2)
	user := uuid.New()
	r1 := row(1, user, "80", 0)
	r1.CenterID = &c1
	r2 := row(2, user, "20", time.Minute)
	r2.CenterID = &c2

	scoped := leaderboard.FilterCenter([]leaderboard.Row{r1, r2}, c1)
	res := leaderboard.Resolve(scoped, leaderboard.Options{CollapseLatestPerUser: true})
	require.Len(t, res, 1)
	require.Equal(t, int64(1), res[0].ID)
	require.Equal(t, "80", res[0].FinalScore.String())
}
