package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MaxDeleteBatch is the largest number of keys a single DeleteObjects call accepts.
const MaxDeleteBatch = 1000

// StorageService defines the operations a deployment needs from an object store.
type StorageService interface {
	PutObject(ctx context.Context, object *StorageObject) error
	// ListObjects returns one page of keys under prefix, the continuation token
	// for the next page and whether more pages remain.
	ListObjects(ctx context.Context, bucketName, prefix string, maxKeys int32, token string) ([]string, string, bool, error)
	// DeleteObjects deletes up to MaxDeleteBatch keys. Keys the store refused to
	// delete are returned with their error; err is set when the whole call failed.
	DeleteObjects(ctx context.Context, bucketName string, keys []string) (failed map[string]error, err error)
}

// S3API is the subset of the S3 client used by S3Service.
type S3API interface {
	manager.UploadAPIClient
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Service implements StorageService on top of an S3-compatible API.
type S3Service struct {
	client   S3API
	uploader *manager.Uploader
}

// NewS3Service creates a new S3Service. Uploader options tune multipart
// behaviour (part size, concurrency).
func NewS3Service(client S3API, opts ...func(*manager.Uploader)) *S3Service {
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client, opts...),
	}
}

// PutObject uploads an object, switching to multipart for large bodies.
func (s *S3Service) PutObject(ctx context.Context, object *StorageObject) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(object.BucketName),
		Key:    aws.String(object.ObjectName),
		Body:   object.GetReader(),
	}

	if object.CacheControl != "" {
		input.CacheControl = aws.String(object.CacheControl)
	}

	if object.ContentType != "" {
		input.ContentType = aws.String(object.ContentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to put object %s: %w", object.ObjectName, err)
	}

	return nil
}

// ListObjects lists a single page of object keys.
func (s *S3Service) ListObjects(
	ctx context.Context,
	bucketName, prefix string,
	maxKeys int32,
	token string,
) ([]string, string, bool, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	}

	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	if maxKeys > 0 {
		input.MaxKeys = aws.Int32(maxKeys)
	}

	if token != "" {
		input.ContinuationToken = aws.String(token)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to list objects: %w", err)
	}

	keys := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		keys = append(keys, aws.ToString(obj.Key))
	}

	return keys, aws.ToString(out.NextContinuationToken), aws.ToBool(out.IsTruncated), nil
}

// DeleteObjects deletes a batch of keys in one request.
func (s *S3Service) DeleteObjects(ctx context.Context, bucketName string, keys []string) (map[string]error, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	if len(keys) > MaxDeleteBatch {
		return nil, fmt.Errorf("cannot delete %d keys in one request, limit is %d", len(keys), MaxDeleteBatch)
	}

	ids := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(key)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucketName),
		Delete: &types.Delete{
			Objects: ids,
			Quiet:   aws.Bool(true),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete objects: %w", err)
	}

	if len(out.Errors) == 0 {
		return nil, nil
	}

	failed := make(map[string]error, len(out.Errors))
	for _, e := range out.Errors {
		failed[aws.ToString(e.Key)] = fmt.Errorf("%s: %s", aws.ToString(e.Code), aws.ToString(e.Message))
	}

	return failed, nil
}

// ListAllObjects pages through every key under prefix.
func ListAllObjects(ctx context.Context, svc StorageService, bucketName, prefix string) ([]string, error) {
	var (
		all   []string
		token string
	)

	for {
		keys, next, truncated, err := svc.ListObjects(ctx, bucketName, prefix, MaxDeleteBatch, token)
		if err != nil {
			return nil, err
		}

		all = append(all, keys...)

		if !truncated || next == "" {
			return all, nil
		}

		token = next
	}
}
