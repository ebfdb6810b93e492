package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAuthentication marks calls made without a usable sync key, or
	// rejected by the remote as unauthenticated.
	ErrAuthentication = errors.New("authentication error")
	// ErrNetwork marks transport-level failures before an HTTP status was read.
	ErrNetwork = errors.New("network error")
	// ErrRemote marks requests the service accepted but refused to process.
	ErrRemote = errors.New("remote error")
	// ErrValidation marks malformed deck or card input caught before any
	// network call.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks deck or card references that do not resolve.
	ErrNotFound = errors.New("not found")
	// ErrImageTooLarge marks encoded images exceeding the configured byte limit.
	ErrImageTooLarge = errors.New("image too large")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrRemote
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short string classification for an error, used by the CLI
// and structured logs. Unrecognized errors report "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrImageTooLarge):
		return "image_too_large"
	case errors.Is(err, ErrRemote):
		return "remote"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
