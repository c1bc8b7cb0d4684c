package storage

import (
	"bytes"
	"io"
)

// StorageObject is a single object to be written to a bucket.
type StorageObject struct {
	BucketName   string
	ObjectName   string
	CacheControl string
	ContentType  string

	body io.Reader
}

// NewStorageObject creates a StorageObject streaming its content from r.
// If r is an io.Closer it is closed by Close.
func NewStorageObject(bucketName, objectName string, r io.Reader) *StorageObject {
	return &StorageObject{
		BucketName: bucketName,
		ObjectName: objectName,
		body:       r,
	}
}

// NewStorageObjectFromString creates a new StorageObject from a string
func NewStorageObjectFromString(bucketName, objectName, content string) *StorageObject {
	return NewStorageObject(bucketName, objectName, bytes.NewReader([]byte(content)))
}

// GetReader returns a reader for the object's data
func (o *StorageObject) GetReader() io.Reader {
	return o.body
}

// Close releases the underlying reader.
func (o *StorageObject) Close() error {
	if c, ok := o.body.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
