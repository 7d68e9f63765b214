package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/httpjson"
)

func (httpserver *HttpServer) contestLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	centerID, err := queryInt64Ptr(r, "center_id")
	if err != nil {
		httpjson.WriteErrorJson(w, "center_id must be an integer",
			http.StatusBadRequest, "invalid_request")
		return
	}

	entries, err := httpserver.contestSrvc.Leaderboard(r.Context(), contestID, centerID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapContestLeaderboard(entries))
}

// contestLeaderboardCenters lists the centers with at least one run,
// used by the frontend to render the filter buttons.
func (httpserver *HttpServer) contestLeaderboardCenters(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	centers, err := httpserver.contestSrvc.LeaderboardCenters(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]centerResponse, 0, len(centers))
	for _, c := range centers {
		response = append(response, centerResponse{ID: c.ID, Name: c.Name})
	}
	httpjson.WriteSuccessJson(w, response)
}
