package contest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contest lifecycle statuses.
const (
	StatusDraft     = "DRAFT"
	StatusOpen      = "OPEN"     // registration (receipt upload) phase
	StatusRunning   = "RUNNING"  // typing allowed within start_at..end_at
	StatusFinished  = "FINISHED" // typing closed, under review
	StatusSettled   = "SETTLED"  // winners confirmed
	StatusCancelled = "CANCELLED"
)

// ValidStatuses enumerates every allowed contest status.
var ValidStatuses = []string{
	StatusDraft, StatusOpen, StatusRunning,
	StatusFinished, StatusSettled, StatusCancelled,
}

// Entry (registration) statuses.
const (
	EntrySubmitted = "SUBMITTED" // receipt uploaded, awaiting review
	EntryApproved  = "APPROVED"  // payment confirmed, typing allowed
	EntryRejected  = "REJECTED"
	EntryRefunded  = "REFUNDED"
)

// Contest is a paid, time-windowed typing competition. The typing
// configuration (language, level, duration) is the same for every
// participant.
type Contest struct {
	ID          int64
	Title       string
	Description string
	CenterID    *int64

	EntryFee decimal.Decimal
	Currency string

	StartAt time.Time
	EndAt   time.Time

	LanguageID int64
	LevelID    int64
	DurationID int64

	AttemptsPerUser int // 0 = unlimited
	MinParticipants int
	MaxParticipants int // 0 = unlimited

	Prize1 decimal.Decimal
	Prize2 decimal.Decimal
	Prize3 decimal.Decimal

	Status    string
	CreatedAt time.Time
}

// IsOpenForUpload reports whether receipt upload (registration) is
// currently allowed.
func (c Contest) IsOpenForUpload(now time.Time) bool {
	return (c.Status == StatusOpen || c.Status == StatusRunning) && now.Before(c.EndAt)
}

// IsRunning reports whether typing is currently allowed.
func (c Contest) IsRunning(now time.Time) bool {
	return c.Status == StatusRunning && !now.Before(c.StartAt) && !now.After(c.EndAt)
}

// Entry is one user's registration for a contest. At most one entry
// exists per (user, contest); the storage enforces it with a unique
// constraint.
type Entry struct {
	ID        int64
	ContestID int64
	UserUUID  uuid.UUID

	Telegram string
	Phone    string

	// ReceiptKey addresses the uploaded payment proof in the receipt
	// store; ReceiptURL is its public location.
	ReceiptKey string
	ReceiptURL string

	Status        string
	ReviewMessage string
	ReviewedBy    *uuid.UUID
	ReviewedAt    *time.Time

	CreatedAt time.Time
}

// Run is one recorded contest attempt. Runs are immutable; the
// suspicious flag is computed at creation time and never edited.
type Run struct {
	ID        int64
	ContestID int64
	UserUUID  uuid.UUID
	CenterID  *int64

	Wpm        decimal.Decimal
	Accuracy   decimal.Decimal
	FinalScore decimal.Decimal
	Suspicious bool

	CreatedAt time.Time
}

// LeaderboardEntry is a contest run joined with its display context.
type LeaderboardEntry struct {
	Run
	Username    string
	DisplayName string
	CenterName  string
}

// CenterRef is a center that has at least one run in a contest, used
// for leaderboard filter buttons.
type CenterRef struct {
	ID   int64
	Name string
}
