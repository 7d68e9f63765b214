package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/httpjson"
)

func (httpserver *HttpServer) createContest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, _, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	type createContestRequest struct {
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
	}

	var request createContestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	startAt, err := time.Parse(time.RFC3339, request.StartAt)
	if err != nil {
		httpjson.WriteErrorJson(w, "start_at must be RFC 3339",
			http.StatusBadRequest, "invalid_request")
		return
	}
	endAt, err := time.Parse(time.RFC3339, request.EndAt)
	if err != nil {
		httpjson.WriteErrorJson(w, "end_at must be RFC 3339",
			http.StatusBadRequest, "invalid_request")
		return
	}

	logger.Info("received create contest request",
		"title", request.Title, "admin", claims.Username)

	created, err := httpserver.contestSrvc.CreateContest(r.Context(), contest.CreateContestParams{
		Title:           request.Title,
		Description:     request.Description,
		CenterID:        request.CenterID,
		EntryFee:        request.EntryFee,
		Currency:        request.Currency,
		StartAt:         startAt,
		EndAt:           endAt,
		LanguageID:      request.LanguageID,
		LevelID:         request.LevelID,
		DurationID:      request.DurationID,
		AttemptsPerUser: request.AttemptsPerUser,
		MinParticipants: request.MinParticipants,
		MaxParticipants: request.MaxParticipants,
		Prize1:          request.Prize1,
		Prize2:          request.Prize2,
		Prize3:          request.Prize3,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContest(created))
}

func (httpserver *HttpServer) setContestStatus(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, _, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	type setStatusRequest struct {
		Status string `json:"status"`
	}

	var request setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received set contest status request",
		"contest_id", contestID, "status", request.Status, "admin", claims.Username)

	if err := httpserver.contestSrvc.SetStatus(r.Context(), contestID, request.Status); err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, nil)
}
