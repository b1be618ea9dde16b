package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapCatalogError wraps catalog load errors with user-friendly context
func WrapCatalogError(err error, path string) error {
	if err == nil {
		return nil
	}
	if path == "" {
		path = "built-in catalog"
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to load catalog %s", path),
		Reason:  extractCatalogReason(err),
		Hint:    "Prices must be a number or \"Custom\"; see catalogs/services.yaml for the expected layout",
		Try:     fmt.Sprintf("svccat catalog validate --catalog %s", path),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Every key can also be set with an SVCCAT_ environment variable, e.g. SVCCAT_LOG_LEVEL=debug",
		Try:     "Remove the file to fall back to defaults, or fix the value named above",
		Err:     err,
	}
}

// NotFoundError reports an unknown catalog id
func NotFoundError(kind, id string, suggestions []string) error {
	e := UserFriendlyError{
		Message: fmt.Sprintf("No %s with id %q", kind, id),
		Hint:    fmt.Sprintf("Ids are listed by: svccat %s list", listCommand(kind)),
	}
	if len(suggestions) > 0 {
		e.Try = "Did you mean: " + strings.Join(suggestions, ", ")
	}
	return e
}

// WrapInputError wraps an invalid flag or form value
func WrapInputError(err error, field string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Invalid value for %s", field),
		Reason:  err.Error(),
		Err:     err,
	}
}

func listCommand(kind string) string {
	if kind == "testimonial" {
		return "testimonials"
	}
	return "catalog"
}

func extractCatalogReason(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "File does not exist"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "File is not readable"
	}

	errStr := err.Error()
	if strings.Contains(errStr, "price") {
		return "A price is neither a number nor \"Custom\""
	}
	if strings.Contains(errStr, "yaml:") || strings.Contains(errStr, "parse") {
		return "File is not valid catalog YAML"
	}
	if strings.Contains(errStr, "version") {
		return "Unsupported catalog version"
	}
	if strings.Contains(errStr, "duplicate") || strings.Contains(errStr, "missing") {
		return "Catalog records are inconsistent"
	}

	return "Catalog could not be read"
}
