package deploy

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a deployment stops because its context ended.
var ErrCancelled = errors.New("deployment cancelled")

// ConfigurationError reports invalid deployment input. It is not retryable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid deployment configuration: " + e.Reason
}

// Op is a store operation performed during a deployment.
type Op string

const (
	OpUpload Op = "upload"
	OpDelete Op = "delete"
	OpList   Op = "list"
)

// TransferError is a failed operation on a single key.
type TransferError struct {
	Op  Op
	Key string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
