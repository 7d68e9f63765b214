package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/httpjson"
)

func (httpserver *HttpServer) practiceLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	centerID, err := queryInt64Ptr(r, "center_id")
	if err != nil {
		httpjson.WriteErrorJson(w, "center_id must be an integer",
			http.StatusBadRequest, "invalid_request")
		return
	}

	entries, err := httpserver.practiceSrvc.Leaderboard(r.Context(), centerID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapPracticeLeaderboard(entries))
}
