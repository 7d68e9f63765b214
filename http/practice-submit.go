package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/httpjson"
	"github.com/typingtutor/backend/practice"
)

func (httpserver *HttpServer) practiceSubmitRun(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, userUUID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	type submitRunRequest struct {
		CenterID        *int64 `json:"center_id"`
		LanguageID      *int64 `json:"language_id"`
		LevelID         *int64 `json:"level_id"`
		DurationSeconds *int   `json:"duration_seconds"`
		Wpm             string `json:"wpm"`
		Accuracy        string `json:"accuracy"`
		FinalScore      string `json:"final_score"`
	}

	var request submitRunRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received practice run", "username", claims.Username)

	run, err := httpserver.practiceSrvc.SubmitRun(r.Context(), practice.SubmitRunParams{
		UserUUID:        userUUID,
		CenterID:        request.CenterID,
		LanguageID:      request.LanguageID,
		LevelID:         request.LevelID,
		DurationSeconds: request.DurationSeconds,
		Wpm:             request.Wpm,
		Accuracy:        request.Accuracy,
		FinalScore:      request.FinalScore,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapPracticeRun(run))
}
