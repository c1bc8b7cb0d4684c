package metadata

import (
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(bucket, key string) events.S3EventRecord {
	var r events.S3EventRecord

	r.S3.Bucket.Name = bucket
	r.S3.Object.Key = key

	return r
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		event   events.S3Event
		want    Request
		wantErr bool
	}{
		{
			name:  "plain key",
			event: events.S3Event{Records: []events.S3EventRecord{record("bucket", "index.html")}},
			want:  Request{Bucket: "bucket", Key: "index.html"},
		},
		{
			name:  "encoded key",
			event: events.S3Event{Records: []events.S3EventRecord{record("bucket", "a%2Fb+c.html")}},
			want:  Request{Bucket: "bucket", Key: "a/b c.html"},
		},
		{
			name: "first record wins",
			event: events.S3Event{Records: []events.S3EventRecord{
				record("one", "first.html"),
				record("two", "second.html"),
			}},
			want: Request{Bucket: "one", Key: "first.html"},
		},
		{name: "no records", event: events.S3Event{}, wantErr: true},
		{
			name:    "empty bucket",
			event:   events.S3Event{Records: []events.S3EventRecord{record("", "index.html")}},
			wantErr: true,
		},
		{
			name:    "empty key",
			event:   events.S3Event{Records: []events.S3EventRecord{record("bucket", "")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.event)
			if tt.wantErr {
				var malformed *MalformedEventError
				require.True(t, errors.As(err, &malformed))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCopySource(t *testing.T) {
	assert.Equal(t, "bucket%2Findex.html", copySource(Request{Bucket: "bucket", Key: "index.html"}))
	assert.Equal(t, "bucket%2Fdocs%2Fmy%20page.html", copySource(Request{Bucket: "bucket", Key: "docs/my page.html"}))
	assert.Equal(t, "bucket%2Fa%2Bb.html", copySource(Request{Bucket: "bucket", Key: "a+b.html"}))
}

func TestMetadataRewriteErrorMessage(t *testing.T) {
	cause := errors.New("A disastrous problem!")
	err := &MetadataRewriteError{Request: Request{Bucket: "b", Key: "k"}, Err: cause}

	assert.Equal(t, "Error: A disastrous problem!", err.Error())
	assert.ErrorIs(t, err, cause)
}
