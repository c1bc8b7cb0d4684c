package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ContentTypeKey is the metadata entry written by the rewrite.
const ContentTypeKey = "Content-Type"

// CopyObjectAPI is the S3 call used for metadata-only copies.
type CopyObjectAPI interface {
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// State is the terminal state of one normalization.
type State int

const (
	StateSkipped State = iota
	StateRewritten
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateRewritten:
		return "rewritten"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MetadataRewriteError wraps a failed copy call.
type MetadataRewriteError struct {
	Request Request
	Err     error
}

func (e *MetadataRewriteError) Error() string {
	return "Error: " + e.Err.Error()
}

func (e *MetadataRewriteError) Unwrap() error {
	return e.Err
}

// Result describes what a normalization did.
type Result struct {
	State   State
	Request Request
	Input   *s3.CopyObjectInput
	Err     error
}

// Normalizer rewrites the Content-Type metadata of newly created objects.
type Normalizer struct {
	client CopyObjectAPI
	types  ContentTypeTable
	logger *slog.Logger
}

// New creates a Normalizer. A nil logger falls back to slog.Default.
func New(client CopyObjectAPI, contentTypes ContentTypeTable, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Normalizer{
		client: client,
		types:  contentTypes,
		logger: logger,
	}
}

// CopyInput builds the in-place copy that replaces the object's metadata.
func CopyInput(req Request, contentType string) *s3.CopyObjectInput {
	return &s3.CopyObjectInput{
		Bucket:            aws.String(req.Bucket),
		CopySource:        aws.String(copySource(req)),
		Key:               aws.String(req.Key),
		MetadataDirective: types.MetadataDirectiveReplace,
		Metadata: map[string]string{
			ContentTypeKey: contentType,
		},
	}
}

// Evaluate normalizes the object named by the first record of event and
// reports the outcome. It never logs.
func (n *Normalizer) Evaluate(ctx context.Context, event events.S3Event) Result {
	req, err := ParseEvent(event)
	if err != nil {
		return Result{State: StateFailed, Err: err}
	}

	contentType, ok := n.types.Lookup(req.Key)
	if !ok {
		return Result{State: StateSkipped, Request: req}
	}

	input := CopyInput(req, contentType)
	res := Result{Request: req, Input: input}

	if err := ctx.Err(); err != nil {
		res.State = StateCancelled
		res.Err = err

		return res
	}

	if _, err := n.client.CopyObject(ctx, input); err != nil {
		if ctx.Err() != nil {
			res.State = StateCancelled
			res.Err = fmt.Errorf("%w: %w", ctx.Err(), err)

			return res
		}

		res.State = StateFailed
		res.Err = &MetadataRewriteError{Request: req, Err: err}

		return res
	}

	res.State = StateRewritten

	return res
}

// Handle is the function entrypoint. Only the first record of a batch is
// processed; notifications for object creation carry one record. Failures are
// logged and never returned, so a failed rewrite does not trigger a retry.
func (n *Normalizer) Handle(ctx context.Context, event events.S3Event) error {
	if len(event.Records) > 1 {
		n.logger.Warn("Only the first record of the event is processed",
			"records", len(event.Records))
	}

	res := n.Evaluate(ctx, event)

	var malformed *MalformedEventError

	switch {
	case res.State == StateRewritten:
		n.logger.Info(fmt.Sprintf("Updated metadata for object: %s", res.Request.Key),
			"bucket", res.Request.Bucket)
	case res.State == StateSkipped:
		n.logger.Debug("No content type mapped for object",
			"bucket", res.Request.Bucket, "key", res.Request.Key)
	case errors.As(res.Err, &malformed):
		n.logger.Error(malformed.Error())
	default:
		n.logger.Error(fmt.Sprintf("Error updating metadata: %v", res.Err),
			"state", res.State.String())
	}

	return nil
}
