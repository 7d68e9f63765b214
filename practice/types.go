package practice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Run is one recorded practice session. Runs are immutable: they are
// inserted once and never edited.
type Run struct {
	ID         int64
	UserUUID   uuid.UUID
	CenterID   *int64
	LanguageID *int64
	LevelID    *int64
	DurationID *int64
	Wpm        decimal.Decimal
	Accuracy   decimal.Decimal
	FinalScore decimal.Decimal
	CreatedAt  time.Time
}

// LeaderboardEntry is a practice run joined with its display context.
type LeaderboardEntry struct {
	Run
	Username        string
	DisplayName     string
	CenterName      string
	LanguageName    string
	LevelName       string
	DurationSeconds int
}
