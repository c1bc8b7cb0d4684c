package metadata

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Request identifies the object a notification is about.
type Request struct {
	Bucket string
	Key    string
}

// MalformedEventError reports a notification that does not name an object.
type MalformedEventError struct {
	Reason string
}

func (e *MalformedEventError) Error() string {
	return "malformed object event: " + e.Reason
}

// ParseEvent extracts the bucket and key of the first record. Keys arrive
// URL-encoded in notifications and are decoded here.
func ParseEvent(event events.S3Event) (Request, error) {
	if len(event.Records) == 0 {
		return Request{}, &MalformedEventError{Reason: "no records"}
	}

	s3 := event.Records[0].S3
	if s3.Bucket.Name == "" {
		return Request{}, &MalformedEventError{Reason: "missing bucket name"}
	}

	if s3.Object.Key == "" {
		return Request{}, &MalformedEventError{Reason: "missing object key"}
	}

	key, err := url.QueryUnescape(s3.Object.Key)
	if err != nil {
		return Request{}, &MalformedEventError{Reason: fmt.Sprintf("undecodable object key %q: %v", s3.Object.Key, err)}
	}

	return Request{Bucket: s3.Bucket.Name, Key: key}, nil
}

// copySource encodes "bucket/key" the way encodeURIComponent does, so the
// separator becomes %2F and spaces become %20.
func copySource(req Request) string {
	return strings.ReplaceAll(url.QueryEscape(req.Bucket+"/"+req.Key), "+", "%20")
}
