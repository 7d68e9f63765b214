package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/httpjson"
)

// reviewEntry lets an admin approve or reject an uploaded payment
// receipt.
func (httpserver *HttpServer) reviewEntry(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	claims, reviewerUUID, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	entryID, err := urlParamInt64(r, "entryID")
	if err != nil {
		httpjson.WriteErrorJson(w, "invalid entry id",
			http.StatusBadRequest, "invalid_request")
		return
	}

	type reviewRequest struct {
		Approve bool   `json:"approve"`
		Message string `json:"message"`
	}

	var request reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received entry review",
		"entry_id", entryID, "approve", request.Approve, "admin", claims.Username)

	entry, err := httpserver.contestSrvc.ReviewEntry(r.Context(), contest.ReviewParams{
		EntryID:      entryID,
		Approve:      request.Approve,
		Message:      request.Message,
		ReviewerUUID: reviewerUUID,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEntry(entry))
}
