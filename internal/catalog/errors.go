package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

var (
	ErrSlugRequired       = errors.New("catalog: slug is required")
	ErrSlugInvalid        = errors.New("catalog: slug contains invalid characters")
	ErrSlugExists         = errors.New("catalog: slug already exists")
	ErrStatusInvalid      = errors.New("catalog: status is invalid")
	ErrTitleRequired      = errors.New("catalog: title is required")
	ErrNameRequired       = errors.New("catalog: name is required")
	ErrPriceInvalid       = errors.New("catalog: price must not be negative")
	ErrMediaURLRequired   = errors.New("catalog: media url is required")
	ErrMediaImmutable     = errors.New("catalog: media references are immutable")
	ErrMediaUploadInvalid = errors.New("catalog: media upload is missing a name")
	ErrUnauthorized       = errors.New("catalog: authentication required")
	ErrStoreUnavailable   = errors.New("catalog: store not configured")
	ErrRelationUnknown    = errors.New("catalog: unknown relation")
	ErrAuthorMissing      = errors.New("catalog: author does not exist")
	ErrCategoryMissing    = errors.New("catalog: category does not exist")
	ErrMediaMissing       = errors.New("catalog: media reference does not exist")
)

const (
	codeValidationFailed = "CATALOG_VALIDATION_FAILED"
	codeUnauthorized     = "CATALOG_UNAUTHORIZED"
	codeNotFound         = "CATALOG_NOT_FOUND"
	codeStoreFailure     = "CATALOG_STORE_FAILURE"
)

// NotFoundError represents missing records from store lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsNotFound reports whether err signals a missing record.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return isNoRows(err) ||
		goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) ||
		goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "catalog validation failed").
		WithTextCode(codeValidationFailed)
}

func wrapUnauthorizedError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryAuth, "catalog authentication required").
		WithTextCode(codeUnauthorized)
}

func wrapNotFoundError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "catalog record not found").
		WithTextCode(codeNotFound)
}

func wrapStoreError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) {
		return wrapNotFoundError(err)
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, fmt.Sprintf("%s store failure", resource)).
		WithTextCode(codeStoreFailure)
}
