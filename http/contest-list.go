package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/auth"
	"github.com/typingtutor/backend/httpjson"
)

func (httpserver *HttpServer) listContests(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	contests, err := httpserver.contestSrvc.ListContests(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]contestResponse, 0, len(contests))
	for _, c := range contests {
		response = append(response, mapContest(c))
	}
	httpjson.WriteSuccessJson(w, response)
}

// getContest returns one contest plus, for an authenticated viewer,
// their own entry status.
func (httpserver *HttpServer) getContest(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	contestID, err := urlParamInt64(r, "contestID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid contest id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	c, err := httpserver.contestSrvc.GetContest(r.Context(), contestID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type getContestResponse struct {
		Contest contestResponse `json:"contest"`
		Entry   *entryResponse  `json:"entry,omitempty"`
	}
	response := getContestResponse{Contest: mapContest(c)}

	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		if userUUID, err := parseClaimsUUID(claims); err == nil {
			if entry, err := httpserver.contestSrvc.GetUserEntry(r.Context(), contestID, userUUID); err == nil {
				mapped := mapEntry(entry)
				response.Entry = &mapped
			}
		}
	}

	httpjson.WriteSuccessJson(w, response)
}
