package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/auth"
	"github.com/typingtutor/backend/httpjson"
	"github.com/typingtutor/backend/user"
)

func (httpserver *HttpServer) authRegister(w http.ResponseWriter, r *http.Request) {
	logger := httplog.LogEntry(r.Context())

	type registerRequest struct {
		Username   string `json:"username"`
		Firstname  string `json:"firstname"`
		Patronymic string `json:"patronymic"`
		Lastname   string `json:"lastname"`
		Password   string `json:"password"`
		Password2  string `json:"password2"`
	}

	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		httpjson.WriteErrorJson(w, http.StatusText(http.StatusBadRequest),
			http.StatusBadRequest, "invalid_request_body")
		return
	}

	logger.Info("received register request", "username", request.Username)

	created, err := httpserver.userSrvc.CreateUser(r.Context(), user.CreateUserParams{
		Username:   request.Username,
		Firstname:  request.Firstname,
		Patronymic: request.Patronymic,
		Lastname:   request.Lastname,
		Password:   request.Password,
		Password2:  request.Password2,
	})
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	token, err := auth.GenerateJWT(created.Username, created.UUID,
		created.Firstname, created.Lastname, userScopes(created), httpserver.jwtKey)
	if err != nil {
		httpjson.HandleError(logger, w, err)
		return
	}

	type registerResponse struct {
		User  userResponse `json:"user"`
		Token string       `json:"token"`
	}

	httpjson.WriteSuccessJson(w, registerResponse{
		User:  mapUser(created),
		Token: token,
	})
}

func userScopes(u user.User) []string {
	if u.IsAdmin {
		return []string{auth.ScopeAdmin}
	}
	return nil
}
