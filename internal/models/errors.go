package models

import "fmt"

// StorageError reports a failed read or write of a key-value store entry
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FetchError reports a page that could not be fetched for tag extraction
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TreeError reports a missing or malformed bookmark tree
type TreeError struct {
	Reason string
	Err    error
}

func (e *TreeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bookmark tree: %s: %v", e.Reason, e.Err)
	}
	return "bookmark tree: " + e.Reason
}

func (e *TreeError) Unwrap() error { return e.Err }

// ImageLoadError reports a background image that failed to load or timed out
type ImageLoadError struct {
	URL string
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("load image %s: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }
