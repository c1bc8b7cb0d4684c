package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/yc-actions/bucket-deploy/internal/metadata"
	"github.com/yc-actions/bucket-deploy/pkg/storage"
)

func main() {
	cfg, err := metadata.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client, err := storage.NewS3Client(context.Background(), cfg.ClientConfig())
	if err != nil {
		logger.Error("failed to create S3 client", "error", err)
		os.Exit(1)
	}

	normalizer := metadata.New(client, cfg.ContentTypeTable(), logger)

	lambda.Start(normalizer.Handle)
}
