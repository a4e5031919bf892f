// Copyright © 2024 The n2h-helper authors

package errtypes

import "fmt"

// TransferError reports a failed streamed download from the source cluster.
type TransferError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransferError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transfer failed for %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("transfer failed for %s: %s", e.URL, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ConversionError reports a non-zero exit from the image conversion tool.
type ConversionError struct {
	ExitCode int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("qemu-img failed with code %d", e.ExitCode)
}

// BindTimeoutError reports a volume that never reached Bound.
type BindTimeoutError struct {
	Name    string
	Timeout string
}

func (e *BindTimeoutError) Error() string {
	return fmt.Sprintf("volume %s not bound within %s", e.Name, e.Timeout)
}

// JobTimeoutError reports a conversion pod that never reached a terminal phase.
type JobTimeoutError struct {
	Name    string
	Timeout string
}

func (e *JobTimeoutError) Error() string {
	return fmt.Sprintf("conversion pod %s did not finish within %s", e.Name, e.Timeout)
}

// PreconditionError reports a source VM in a state that forbids migration.
type PreconditionError struct {
	VM     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed for %s: %s", e.VM, e.Reason)
}

// APIError carries the parsed error message of a non-success platform response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.Status, e.Message)
}

// NotFoundError reports a named remote resource that does not exist.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
