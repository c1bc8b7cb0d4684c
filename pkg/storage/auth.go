package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/middleware"
	"github.com/aws/smithy-go/tracing"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/yandex-cloud/go-genproto/yandex/cloud/iam/v1"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// subjectTokenHeader carries the IAM token for Yandex Object Storage.
const subjectTokenHeader = "X-YaCloud-SubjectToken"

// tokenRefreshMargin is how long before expiry a cached token is replaced.
const tokenRefreshMargin = 5 * time.Minute

// IAMTokenCreator issues IAM tokens. *ycsdk.SDK satisfies it.
type IAMTokenCreator interface {
	CreateIAMToken(ctx context.Context) (*iam.CreateIamTokenResponse, error)
}

type iamRequestMiddleware struct {
	creator   IAMTokenCreator
	now       func() time.Time
	token     string
	expiresAt *timestamppb.Timestamp
	mutex     sync.Mutex
}

func newIAMRequestMiddleware(creator IAMTokenCreator) *iamRequestMiddleware {
	return &iamRequestMiddleware{creator: creator, now: time.Now}
}

func (*iamRequestMiddleware) ID() string {
	return "IamToken"
}

func (m *iamRequestMiddleware) HandleFinalize(
	ctx context.Context,
	in middleware.FinalizeInput,
	next middleware.FinalizeHandler,
) (
	out middleware.FinalizeOutput, metadata middleware.Metadata, err error,
) {
	ctx, span := tracing.StartSpan(ctx, "IamToken")
	defer span.End()

	req, ok := in.Request.(*smithyhttp.Request)
	if !ok {
		return out, metadata, fmt.Errorf("unexpected transport type %T", in.Request)
	}

	token, err := m.getIAMToken(ctx)
	if err != nil {
		return out, metadata, fmt.Errorf("failed to create IAM token: %w", err)
	}

	req.Header.Set(subjectTokenHeader, token)

	return next.HandleFinalize(ctx, in)
}

// getIAMToken returns the cached token, creating a new one when it is missing
// or close to expiry.
func (m *iamRequestMiddleware) getIAMToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.token != "" && !expiresSoon(m.expiresAt, m.now()) {
		return m.token, nil
	}

	resp, err := m.creator.CreateIAMToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get IAM token: %w", err)
	}

	m.token = resp.GetIamToken()
	m.expiresAt = resp.GetExpiresAt()

	return m.token, nil
}

// expiresSoon reports whether a token expiring at expiresAt should be refreshed.
// Tokens without an expiry are kept.
func expiresSoon(expiresAt *timestamppb.Timestamp, now time.Time) bool {
	if expiresAt == nil {
		return false
	}

	return !now.Add(tokenRefreshMargin).Before(expiresAt.AsTime())
}

// swapAuth replaces SigV4 signing with the IAM token header.
func swapAuth(creator IAMTokenCreator) func(options *s3.Options) {
	mw := newIAMRequestMiddleware(creator)

	return func(options *s3.Options) {
		options.APIOptions = append(options.APIOptions, func(stack *middleware.Stack) error {
			_, err := stack.Finalize.Swap("Signing", mw)

			return err
		})
	}
}
