package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	// YandexEndpoint is the Yandex Object Storage S3 endpoint.
	YandexEndpoint = "https://storage.yandexcloud.net"
	// YandexRegion is the default Yandex Cloud region.
	YandexRegion = "ru-central1"
)

// ClientConfig configures the S3 client.
type ClientConfig struct {
	Region          string
	Endpoint        string
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string

	// IAM, when set, authorizes requests with a Yandex IAM token instead of
	// SigV4 and defaults Region/Endpoint to Yandex Object Storage.
	IAM IAMTokenCreator
}

// NewS3Client builds an S3 client from cfg.
func NewS3Client(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	if cfg.IAM != nil {
		if cfg.Region == "" {
			cfg.Region = YandexRegion
		}

		if cfg.Endpoint == "" {
			cfg.Endpoint = YandexEndpoint
		}
	}

	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("access key id and secret access key must be set together")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	switch {
	case cfg.AccessKeyID != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	case cfg.IAM != nil:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)

	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	if cfg.IAM != nil && cfg.AccessKeyID == "" {
		s3Opts = append(s3Opts, swapAuth(cfg.IAM))
	}

	return s3.NewFromConfig(awsCfg, s3Opts...), nil
}
