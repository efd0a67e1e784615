package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents a failed page fetch (network error or non-success status)
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRateLimit represents rate limiting by the deals site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeStoreAbsent means nothing has been persisted yet
	ErrorTypeStoreAbsent ErrorType = "store_absent"
	// ErrorTypeStoreLoad represents a corrupt or unreachable wishlist store
	ErrorTypeStoreLoad ErrorType = "store_load"
	// ErrorTypeStoreSave represents a failed wishlist write
	ErrorTypeStoreSave ErrorType = "store_save"
	// ErrorTypeItemNotFound represents removal of an item missing from the wishlist
	ErrorTypeItemNotFound ErrorType = "item_not_found"
	// ErrorTypeOutput represents a failure writing the rendered listing
	ErrorTypeOutput ErrorType = "output"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// DealerError is the error type shared by every component
type DealerError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *DealerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *DealerError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *DealerError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	default:
		return false
	}
}

// IsType reports whether err, or any error it wraps, is a DealerError of type t
func IsType(err error, t ErrorType) bool {
	var de *DealerError
	for err != nil {
		if !stderrors.As(err, &de) {
			return false
		}
		if de.Type == t {
			return true
		}
		err = de.Err
	}
	return false
}

// New creates a new DealerError
func New(errType ErrorType, source, message string, err error) *DealerError {
	return &DealerError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *DealerError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *DealerError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *DealerError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewStoreAbsent creates an error for a store that holds no wishlist yet
func NewStoreAbsent(source, key string) *DealerError {
	return New(ErrorTypeStoreAbsent, source, fmt.Sprintf("no wishlist stored under %q", key), nil)
}

// NewStoreLoad creates a new store load error
func NewStoreLoad(source, message string, err error) *DealerError {
	return New(ErrorTypeStoreLoad, source, message, err)
}

// NewStoreSave creates a new store save error
func NewStoreSave(source, message string, err error) *DealerError {
	return New(ErrorTypeStoreSave, source, message, err)
}

// NewItemNotFound creates a new item-not-found error
func NewItemNotFound(item string) *DealerError {
	return New(ErrorTypeItemNotFound, "wishlist", fmt.Sprintf("%q is not in the wishlist", item), nil)
}

// NewOutput creates a new output error
func NewOutput(path, message string, err error) *DealerError {
	return New(ErrorTypeOutput, path, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *DealerError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *DealerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
