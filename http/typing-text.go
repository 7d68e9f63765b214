package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/httpjson"
)

// typingText serves a random practice text for the requested language
// and level.
func (httpserver *HttpServer) typingText(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	languageID, err := strconv.ParseInt(r.URL.Query().Get("language_id"), 10, 64)
	if err != nil {
		httpjson.WriteErrorJson(w, "language_id is required",
			http.StatusBadRequest, "invalid_request")
		return
	}
	levelID, err := strconv.ParseInt(r.URL.Query().Get("level_id"), 10, 64)
	if err != nil {
		httpjson.WriteErrorJson(w, "level_id is required",
			http.StatusBadRequest, "invalid_request")
		return
	}

	text, err := httpserver.practiceSrvc.TypingText(r.Context(), languageID, levelID)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapText(text))
}
