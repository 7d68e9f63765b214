package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/httpjson"
)

// startContestRun checks eligibility and hands out the text and
// duration for a contest attempt.
func (httpserver *HttpServer) startContestRun(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	logger.Info("received contest start request",
		"contest_id", contestID, "username", claims.Username)

	session, err := httpserver.contestSrvc.Start(r.Context(), contestID, userUUID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type startResponse struct {
		Contest         contestResponse `json:"contest"`
		Text            textResponse    `json:"text"`
		DurationSeconds int             `json:"duration_seconds"`
	}

	httpjson.WriteSuccessJson(w, startResponse{
		Contest:         mapContest(session.Contest),
		Text:            mapText(session.Text),
		DurationSeconds: session.DurationSeconds,
	})
}

func (httpserver *HttpServer) contestSubmitRun(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	type submitRunRequest struct {
		CenterID   *int64 `json:"center_id"`
		Wpm        string `json:"wpm"`
		Accuracy   string `json:"accuracy"`
		FinalScore string `json:"final_score"`
	}

	var request submitRunRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received contest run",
		"contest_id", contestID, "username", claims.Username)

	run, err := httpserver.contestSrvc.SubmitRun(r.Context(), contest.SubmitRunParams{
		ContestID:  contestID,
		UserUUID:   userUUID,
		CenterID:   request.CenterID,
		Wpm:        request.Wpm,
		Accuracy:   request.Accuracy,
		FinalScore: request.FinalScore,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContestRun(run))
}
