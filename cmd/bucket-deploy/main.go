package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	ycsdk "github.com/yandex-cloud/go-sdk"

	"github.com/yc-actions/bucket-deploy/internal/deploy"
	"github.com/yc-actions/bucket-deploy/pkg/serviceaccount"
	"github.com/yc-actions/bucket-deploy/pkg/size"
	"github.com/yc-actions/bucket-deploy/pkg/sourcecraft"
	"github.com/yc-actions/bucket-deploy/pkg/storage"
)

// Action inputs.
const (
	inputBucket              = "BUCKET"
	inputPrefix              = "PREFIX"
	inputRoot                = "ROOT"
	inputCacheControl        = "CACHE_CONTROL"
	inputPrune               = "PRUNE"
	inputParallel            = "PARALLEL"
	inputPartSize            = "PART_SIZE"
	inputFailOnError         = "FAIL_ON_ERROR"
	inputDryRun              = "DRY_RUN"
	inputEndpoint            = "ENDPOINT"
	inputRegion              = "REGION"
	inputAccessKeyID         = "AWS_ACCESS_KEY_ID"
	inputSecretAccessKey     = "AWS_SECRET_ACCESS_KEY"
	inputYcSaJsonCredentials = "YC_SA_JSON_CREDENTIALS"
	inputYcIamToken          = "YC_IAM_TOKEN"
)

// buildSDK returns a Yandex Cloud SDK when YC credentials are supplied, nil otherwise.
func buildSDK(ctx context.Context) (*ycsdk.SDK, error) {
	credentials, err := serviceaccount.Credentials(
		sourcecraft.GetInput(inputYcSaJsonCredentials),
		sourcecraft.GetInput(inputYcIamToken),
	)
	if errors.Is(err, serviceaccount.ErrNoCredentials) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	sdk, err := ycsdk.Build(ctx, ycsdk.Config{
		Credentials: credentials,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SDK: %w", err)
	}

	sourcecraft.Info("Using Yandex Cloud IAM authorization")

	return sdk, nil
}

func newStorageService(ctx context.Context) (*storage.S3Service, error) {
	cfg := storage.ClientConfig{
		Region:          sourcecraft.GetInput(inputRegion),
		Endpoint:        sourcecraft.GetInput(inputEndpoint),
		AccessKeyID:     sourcecraft.GetInput(inputAccessKeyID),
		SecretAccessKey: sourcecraft.GetInput(inputSecretAccessKey),
	}

	if cfg.AccessKeyID == "" {
		sdk, err := buildSDK(ctx)
		if err != nil {
			return nil, err
		}

		if sdk != nil {
			cfg.IAM = sdk
		}
	}

	client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var uploaderOpts []func(*manager.Uploader)

	if partSize := sourcecraft.GetInput(inputPartSize); partSize != "" {
		n, err := size.Parse(partSize)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", inputPartSize, err)
		}

		uploaderOpts = append(uploaderOpts, func(u *manager.Uploader) {
			u.PartSize = n
		})
	}

	return storage.NewS3Service(client, uploaderOpts...), nil
}

func main() {
	var dryRun bool

	flagSet := pflag.NewFlagSet("bucket-deploy", pflag.ContinueOnError)
	flagSet.BoolVar(&dryRun, "dry-run", sourcecraft.GetBooleanInput(inputDryRun), "log the deployment plan without uploading")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}

		sourcecraft.SetFailed(err.Error())

		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	parallel, err := sourcecraft.GetIntInput(inputParallel, deploy.DefaultParallel)
	if err != nil {
		sourcecraft.SetFailed(err.Error())

		return
	}

	inputs := &deploy.ActionInputs{
		Bucket: sourcecraft.GetInput(inputBucket),
		Prefix: sourcecraft.GetInput(inputPrefix),
		Root:   sourcecraft.GetInput(inputRoot),
		CacheControl: deploy.ParseCacheControlRules(
			sourcecraft.GetMultilineInput(inputCacheControl),
		),
		Prune:       sourcecraft.GetBooleanInput(inputPrune),
		FailOnError: sourcecraft.GetBooleanInput(inputFailOnError),
		DryRun:      dryRun,
	}

	exec := &deploy.Executor{
		Fs:       afero.NewOsFs(),
		Parallel: parallel,
	}

	if !dryRun {
		storageService, err := newStorageService(ctx)
		if err != nil {
			sourcecraft.SetFailed(fmt.Sprintf("Failed to create storage client: %v", err))

			return
		}

		exec.Storage = storageService
	}

	report, err := deploy.Deploy(ctx, exec, inputs)
	if report != nil {
		sourcecraft.SetOutput("DEPLOYMENT_ID", report.ID)
		sourcecraft.SetOutput("UPLOADED", strconv.Itoa(report.Uploaded()))
		sourcecraft.SetOutput("DELETED", strconv.Itoa(report.Deleted()))
		sourcecraft.SetOutput("FAILED", strconv.Itoa(len(report.Failed())))
	}

	if err != nil {
		sourcecraft.SetFailed(fmt.Sprintf("Deployment failed: %v", err))

		return
	}

	sourcecraft.Info("Deployment complete")
}
