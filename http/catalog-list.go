package http

import (
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/httpjson"
)

type centerResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (httpserver *HttpServer) listCenters(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	centers, err := httpserver.catalogSrvc.ListCenters(r.Context())
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

type languageResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (httpserver *HttpServer) listLanguages(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	languages, err := httpserver.catalogSrvc.ListLanguages(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]languageResponse, 0, len(languages))
	for _, l := range languages {
		response = append(response, languageResponse{ID: l.ID, Name: l.Name})
	}
	httpjson.WriteSuccessJson(w, response)
}

type levelResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (httpserver *HttpServer) listLevels(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	levels, err := httpserver.catalogSrvc.ListLevels(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]levelResponse, 0, len(levels))
	for _, l := range levels {
		response = append(response, levelResponse{ID: l.ID, Name: l.Name})
	}
	httpjson.WriteSuccessJson(w, response)
}

type durationResponse struct {
	ID      int64 `json:"id"`
	Seconds int   `json:"seconds"`
}

func (httpserver *HttpServer) listDurations(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	durations, err := httpserver.catalogSrvc.ListDurations(r.Context())
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	response := make([]durationResponse, 0, len(durations))
	for _, d := range durations {
		response = append(response, durationResponse{ID: d.ID, Seconds: d.Seconds})
	}
	httpjson.WriteSuccessJson(w, response)
}
