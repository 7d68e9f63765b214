package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/typingtutor/backend/catalog"
	"github.com/typingtutor/backend/conf"
	"github.com/typingtutor/backend/contest"
	"github.com/typingtutor/backend/http"
	"github.com/typingtutor/backend/migrate"
	"github.com/typingtutor/backend/pgdb"
	"github.com/typingtutor/backend/practice"
	"github.com/typingtutor/backend/s3bucket"
	"github.com/typingtutor/backend/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		panic("Error loading .env file")
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := conf.GetPgConnStrFromEnv()
	if err := migrate.Up(ctx, dsn); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	db, err := pgdb.New(ctx, dsn)
	if err != nil {
		slog.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}
	receiptBucket := os.Getenv("RECEIPT_S3_BUCKET")
	if receiptBucket == "" {
		receiptBucket = "typingtutor-receipts"
	}
	receipts, err := s3bucket.NewS3Bucket(region, receiptBucket)
	if err != nil {
		slog.Error("failed to init receipt bucket", "error", err)
		os.Exit(1)
	}

	userSrvc := user.NewUserSrvc(user.NewPgUserRepo(db))
	catalogSrvc := catalog.NewCatalogSrvc(catalog.NewPgCatalogRepo(db))
	practiceSrvc := practice.NewPracticeSrvc(practice.NewPgPracticeRepo(db), catalogSrvc)
	contestSrvc := contest.NewContestSrvc(contest.NewPgContestRepo(db), catalogSrvc, receipts)

	if seedPath := os.Getenv("CATALOG_SEED_PATH"); seedPath != "" {
		if err := catalogSrvc.SeedFromFile(ctx, seedPath); err != nil {
			slog.Error("failed to seed catalog", "error", err, "path", seedPath)
			os.Exit(1)
		}
	}

	httpServer := http.NewHttpServer(
		userSrvc, catalogSrvc, practiceSrvc, contestSrvc, []byte(jwtKey))

	address := ":8080"
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}
