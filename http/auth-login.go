package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/auth"
	"github.com/typingtutor/backend/httpjson"
	"github.com/typingtutor/backend/user"
)

func (httpserver *HttpServer) authLogin(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type loginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received login request", "username", request.Username)

	u, err := httpserver.userSrvc.Login(r.Context(), user.LoginParams{
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	token, err := auth.GenerateJWT(u.Username, u.UUID,
		u.Firstname, u.Lastname, userScopes(u), httpserver.jwtKey)
	if err != nil {
		logger.Error("failed to generate JWT", "error", err)
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError, "")
		return
	}

	type loginResponse struct {
		User  userResponse `json:"user"`
		Token string       `json:"token"`
	}

	httpjson.WriteSuccessJson(w, loginResponse{
		User:  mapUser(u),
		Token: token,
	})
}
