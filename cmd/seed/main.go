// Package main implements the catalog seeder. It bulk-loads books from a
// CSV file, either local or in S3, writing through the same dual-backend
// repository the server uses so every seeded book lands in both stores.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bookbazaar/bookbazaar-api/internal/config"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/dynamo"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/logger"
	"github.com/bookbazaar/bookbazaar-api/internal/platform/postgres"
	"github.com/bookbazaar/bookbazaar-api/internal/repository"
	"github.com/bookbazaar/bookbazaar-api/internal/seed"
)

func main() {
	filePath := flag.String("file", "", "path to a local seed CSV")
	bucket := flag.String("bucket", "", "S3 bucket holding the seed CSV")
	key := flag.String("key", "", "S3 object key of the seed CSV")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Server)

	ctx := context.Background()

	source, err := buildSource(ctx, cfg, *filePath, *bucket, *key)
	if err != nil {
		slog.Error("Invalid seed source", "error", err)
		os.Exit(2)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("Failed to connect to primary store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	dynamoClient, err := dynamo.NewClient(ctx, cfg.AWS.Region)
	if err != nil {
		slog.Error("Failed to create secondary-store client", "error", err)
		os.Exit(1)
	}

	books := repository.NewBookRepository(
		postgres.NewBookStore(db),
		dynamo.NewBooksTable(dynamoClient, cfg.AWS.BooksTable))

	summary, err := seed.NewLoader(books).Run(ctx, source)
	if err != nil {
		slog.Error("Seed run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Catalog seeded",
		"created", summary.Created,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"mirrored", summary.Mirrored)
}

// buildSource picks the seed source from flags: exactly one of a local file
// or an S3 bucket/key pair.
func buildSource(ctx context.Context, cfg *config.Config, filePath, bucket, key string) (seed.Source, error) {
	switch {
	case filePath != "" && bucket == "":
		return seed.FileSource{Path: filePath}, nil
	case filePath == "" && bucket != "" && key != "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, err
		}
		return seed.S3Source{Client: s3.NewFromConfig(awsCfg), Bucket: bucket, Key: key}, nil
	default:
		return nil, errors.New("pass either -file, or -bucket and -key")
	}
}
