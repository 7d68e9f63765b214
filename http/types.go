package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/typingtutor/backend/auth"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/httpjson"
	"github.com/typingtutor/backend/practice"
	"github.com/typingtutor/backend/user"
)

type userResponse struct {
	UUID        string  `json:"uuid"`
	Username    string  `json:"username"`
	Firstname   *string `json:"firstname"`
	Patronymic  *string `json:"patronymic"`
	Lastname    *string `json:"lastname"`
	DisplayName string  `json:"display_name"`
	IsAdmin     bool    `json:"is_admin"`
}

func mapUser(u user.User) userResponse {
	return userResponse{
		UUID:        u.UUID.String(),
		Username:    u.Username,
		Firstname:   u.Firstname,
		Patronymic:  u.Patronymic,
		Lastname:    u.Lastname,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
	}
}

type textResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func mapText(t catalog.Text) textResponse {
	return textResponse{ID: t.ID, Title: t.Title, Content: t.Content}
}

type practiceRunResponse struct {
	ID         int64  `json:"id"`
	Wpm        string `json:"wpm"`
	Accuracy   string `json:"accuracy"`
	FinalScore string `json:"final_score"`
	CreatedAt  string `json:"created_at"`
}

func mapPracticeRun(r practice.Run) practiceRunResponse {
	return practiceRunResponse{
		ID:         r.ID,
		Wpm:        r.Wpm.StringFixed(2),
		Accuracy:   r.Accuracy.StringFixed(2),
		FinalScore: r.FinalScore.StringFixed(2),
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

type practiceLeaderboardRow struct {
	Rank            int    `json:"rank"`
	Username        string `json:"username"`
	DisplayName     string `json:"display_name"`
	CenterName      string `json:"center_name,omitempty"`
	LanguageName    string `json:"language_name,omitempty"`
	LevelName       string `json:"level_name,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Wpm             string `json:"wpm"`
	Accuracy        string `json:"accuracy"`
	FinalScore      string `json:"final_score"`
	CreatedAt       string `json:"created_at"`
}

func mapPracticeLeaderboard(entries []practice.LeaderboardEntry) []practiceLeaderboardRow {
	rows := make([]practiceLeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, practiceLeaderboardRow{
			Rank:            i + 1,
			Username:        e.Username,
			DisplayName:     e.DisplayName,
			CenterName:      e.CenterName,
			LanguageName:    e.LanguageName,
			LevelName:       e.LevelName,
			DurationSeconds: e.DurationSeconds,
			Wpm:             e.Wpm.StringFixed(2),
			Accuracy:        e.Accuracy.StringFixed(2),
			FinalScore:      e.FinalScore.StringFixed(2),
			CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

type contestResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CenterID        *int64 `json:"center_id"`
	EntryFee        string `json:"entry_fee"`
	Currency        string `json:"currency"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	LanguageID      int64  `json:"language_id"`
	LevelID         int64  `json:"level_id"`
	DurationID      int64  `json:"duration_id"`
	AttemptsPerUser int    `json:"attempts_per_user"`
	MinParticipants int    `json:"min_participants"`
	MaxParticipants int    `json:"max_participants"`
	Prize1          string `json:"prize1"`
	Prize2          string `json:"prize2"`
	Prize3          string `json:"prize3"`
	Status          string `json:"status"`
}

func mapContest(c contest.Contest) contestResponse {
	return contestResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		CenterID:        c.CenterID,
		EntryFee:        c.EntryFee.StringFixed(2),
		Currency:        c.Currency,
		StartAt:         c.StartAt.Format(time.RFC3339),
		EndAt:           c.EndAt.Format(time.RFC3339),
		LanguageID:      c.LanguageID,
		LevelID:         c.LevelID,
		DurationID:      c.DurationID,
		AttemptsPerUser: c.AttemptsPerUser,
		MinParticipants: c.MinParticipants,
		MaxParticipants: c.MaxParticipants,
		Prize1:          c.Prize1.StringFixed(2),
		Prize2:          c.Prize2.StringFixed(2),
		Prize3:          c.Prize3.StringFixed(2),
		Status:          c.Status,
	}
}

type entryResponse struct {
	ID            int64  `json:"id"`
	ContestID     int64  `json:"contest_id"`
	Status        string `json:"status"`
	Telegram      string `json:"telegram,omitempty"`
	Phone         string `json:"phone,omitempty"`
	ReceiptURL    string `json:"receipt_url,omitempty"`
	ReviewMessage string `json:"review_message,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func mapEntry(e contest.Entry) entryResponse {
	return entryResponse{
		ID:            e.ID,
		ContestID:     e.ContestID,
		Status:        e.Status,
		Telegram:      e.Telegram,
		Phone:         e.Phone,
		ReceiptURL:    e.ReceiptURL,
		ReviewMessage: e.ReviewMessage,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

type contestRunResponse struct {
	ID         int64  `json:"id"`
	ContestID  int64  `json:"contest_id"`
	Wpm        string `json:"wpm"`
	Accuracy   string `json:"accuracy"`
	FinalScore string `json:"final_score"`
	Suspicious bool   `json:"suspicious"`
	CreatedAt  string `json:"created_at"`
}

func mapContestRun(r contest.Run) contestRunResponse {
	return contestRunResponse{
		ID:         r.ID,
		ContestID:  r.ContestID,
		Wpm:        r.Wpm.StringFixed(2),
		Accuracy:   r.Accuracy.StringFixed(2),
		FinalScore: r.FinalScore.StringFixed(2),
		Suspicious: r.Suspicious,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

type contestLeaderboardRow struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	CenterName  string `json:"center_name,omitempty"`
	Wpm         string `json:"wpm"`
	Accuracy    string `json:"accuracy"`
	FinalScore  string `json:"final_score"`
	Suspicious  bool   `json:"suspicious"`
	CreatedAt   string `json:"created_at"`
}

func mapContestLeaderboard(entries []contest.LeaderboardEntry) []contestLeaderboardRow {
	rows := make([]contestLeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, contestLeaderboardRow{
			Rank:        i + 1,
			Username:    e.Username,
			DisplayName: e.DisplayName,
			CenterName:  e.CenterName,
			Wpm:         e.Wpm.StringFixed(2),
			Accuracy:    e.Accuracy.StringFixed(2),
			FinalScore:  e.FinalScore.StringFixed(2),
			Suspicious:  e.Suspicious,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows
}

func parseClaimsUUID(claims *auth.JwtClaims) (uuid.UUID, error) {
	return uuid.Parse(claims.UUID)
}

// requireAuth extracts the authenticated user's UUID from the JWT
// claims placed in the context by the middleware. It writes the 401
// itself and returns false when the request is anonymous.
func requireAuth(w http.ResponseWriter, r *http.Request) (*auth.JwtClaims, uuid.UUID, bool) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.WriteErrorJson(w, "authentication required",
			http.StatusUnauthorized, "unauthorized")
		return nil, uuid.Nil, false
	}
	userUUID, err := uuid.Parse(claims.UUID)
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid token subject",
			http.StatusUnauthorized, "unauthorized")
		return nil, uuid.Nil, false
	}
	return claims, userUUID, true
}

// requireAdmin is requireAuth plus the admin scope check.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*auth.JwtClaims, uuid.UUID, bool) {
	claims, userUUID, ok := requireAuth(w, r)
	if !ok {
		return nil, uuid.Nil, false
	}
	if !claims.HasScope(auth.ScopeAdmin) {
		httpjson.WriteErrorJson(w, "admin access required",
			http.StatusForbidden, "forbidden")
		return nil, uuid.Nil, false
	}
	return claims, userUUID, true
}

func urlParamInt64(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// queryInt64Ptr reads an optional integer query parameter; absent or
// blank means nil.
func queryInt64Ptr(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
