package http

import (
	"io"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/httpjson"
)

// maxReceiptSize caps the uploaded payment proof at 10 MiB.
const maxReceiptSize = 10 << 20

// joinContest registers the viewer for a contest. The request is
// multipart form data with a "receipt" file plus optional contact
// fields.
func (httpserver *HttpServer) joinContest(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		httpjson.WriteErrorJson(w, "multipart form data expected",
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	var receipt []byte
	file, _, err := r.FormFile("receipt")
	if err == nil {
		defer file.Close()
		receipt, err = io.ReadAll(io.LimitReader(file, maxReceiptSize))
		if err != nil {
			httpjson.WriteErrorJson(w, "failed to read receipt file",
				http.StatusBadRequest, "invalid_request_body")
			return
		}
	}

	logger.Info("received contest join request",
		"contest_id", contestID, "username", claims.Username)

	entry, err := httpserver.contestSrvc.Join(r.Context(), contest.JoinParams{
		ContestID: contestID,
		UserUUID:  userUUID,
		Telegram:  r.FormValue("telegram"),
		Phone:     r.FormValue("phone"),
		Receipt:   receipt,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapEntry(entry))
}
