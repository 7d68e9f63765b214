// Package http exposes the typing tutor API over REST. Every response
// uses the shared JSON envelope; authentication is a bearer JWT put
// into the request context by the auth middleware.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/typingtutor/backend/auth"
	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/practice"
	"github.com/typingtutor/backend/user"
)

type HttpServer struct {
	userSrvc     *user.UserSrvc
	catalogSrvc  *catalog.CatalogSrvc
	practiceSrvc *practice.PracticeSrvc
	contestSrvc  *contest.ContestSrvc

	jwtKey []byte
	router *chi.Mux
}

func NewHttpServer(
	userSrvc *user.UserSrvc,
	catalogSrvc *catalog.CatalogSrvc,
	practiceSrvc *practice.PracticeSrvc,
	contestSrvc *contest.ContestSrvc,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("typingtutor", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(auth.GetJwtAuthMiddleware(jwtKey))

	server := &HttpServer{
		userSrvc:     userSrvc,
		catalogSrvc:  catalogSrvc,
		practiceSrvc: practiceSrvc,
		contestSrvc:  contestSrvc,
		jwtKey:       jwtKey,
		router:       router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router

	r.Post("/auth/register", httpserver.authRegister)
	r.Post("/auth/login", httpserver.authLogin)

	r.Get("/centers", httpserver.listCenters)
	r.Get("/languages", httpserver.listLanguages)
	r.Get("/levels", httpserver.listLevels)
	r.Get("/durations", httpserver.listDurations)
	r.Get("/typing-text", httpserver.typingText)

	r.Post("/practice/runs", httpserver.practiceSubmitRun)
	r.Get("/practice/leaderboard", httpserver.practiceLeaderboard)

	r.Get("/contests", httpserver.listContests)
	r.Post("/contests", httpserver.createContest)
	r.Get("/contests/{contestID}", httpserver.getContest)
	r.Post("/contests/{contestID}/status", httpserver.setContestStatus)
	r.Post("/contests/{contestID}/join", httpserver.joinContest)
	r.Post("/contests/{contestID}/start", httpserver.startContestRun)
	r.Post("/contests/{contestID}/runs", httpserver.contestSubmitRun)
	r.Get("/contests/{contestID}/leaderboard", httpserver.contestLeaderboard)
	r.Get("/contests/{contestID}/centers", httpserver.contestLeaderboardCenters)

	r.Post("/entries/{entryID}/review", httpserver.reviewEntry)
}
