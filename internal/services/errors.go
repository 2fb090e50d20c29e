package services

import "fmt"

// Failure taxonomy for report generation and pack assembly. Every failure
// carries enough context (filename, stage) for the operator to act; nothing
// is retried or skipped silently.

// DataUnavailableError signals a required upstream record could not be read.
// The composer fails the whole report; no partial report is ever returned.
type DataUnavailableError struct {
	What string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("required data unavailable: %s: %v", e.What, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ConversionFailedError signals image-to-PDF normalization failed for one
// attachment. Other attachments' state is unaffected.
type ConversionFailedError struct {
	Filename string
	Err      error
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("conversion failed for %q: %v", e.Filename, e.Err)
}

func (e *ConversionFailedError) Unwrap() error { return e.Err }

// BinaryUnavailableError signals the object store could not supply an
// attachment's resolved binary during merge.
type BinaryUnavailableError struct {
	Filename string
	Err      error
}

func (e *BinaryUnavailableError) Error() string {
	return fmt.Sprintf("binary unavailable for %q: %v", e.Filename, e.Err)
}

func (e *BinaryUnavailableError) Unwrap() error { return e.Err }

// MergeAbortedError wraps any failure inside the merge iteration. The whole
// merge is abandoned; no partial pack is returned.
type MergeAbortedError struct {
	DisplayName string
	Stage       string
	Err         error
}

func (e *MergeAbortedError) Error() string {
	return fmt.Sprintf("merge aborted at %s for %q: %v", e.Stage, e.DisplayName, e.Err)
}

func (e *MergeAbortedError) Unwrap() error { return e.Err }
