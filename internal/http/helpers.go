package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/pagination"
	"github.com/goliatone/go-catalog/internal/sections"
	"github.com/goliatone/go-catalog/internal/validation"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type listEnvelope struct {
	Data any      `json:"data"`
	Meta metaBody `json:"meta"`
}

type metaBody struct {
	Pagination pagination.Result `json:"pagination"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Status  int                          `json:"status"`
	Name    string                       `json:"name"`
	Message string                       `json:"message"`
	Details []validation.Issue `json:"details,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, dataEnvelope{Data: payload})
}

func writeList(w http.ResponseWriter, payload any, meta pagination.Result) {
	writeJSON(w, http.StatusOK, listEnvelope{Data: payload, Meta: metaBody{Pagination: meta}})
}

func writeError(w http.ResponseWriter, err error) {
	status, body := mapError(err)
	writeJSON(w, status, errorEnvelope{Error: body})
}

func mapError(err error) (int, errorBody) {
	if err == nil {
		return http.StatusInternalServerError, errorBody{
			Status: http.StatusInternalServerError,
			Name:   "internal_error",
		}
	}

	if catalog.IsNotFound(err) {
		return http.StatusNotFound, errorBody{
			Status:  http.StatusNotFound,
			Name:    "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, catalog.ErrUnauthorized) || goerrors.IsCategory(err, goerrors.CategoryAuth) {
		return http.StatusUnauthorized, errorBody{
			Status:  http.StatusUnauthorized,
			Name:    "unauthorized",
			Message: err.Error(),
		}
	}

	if isValidation(err) {
		return http.StatusBadRequest, errorBody{
			Status:  http.StatusBadRequest,
			Name:    "validation_failed",
			Message: err.Error(),
			Details: issueDetails(err),
		}
	}

	return http.StatusInternalServerError, errorBody{
		Status:  http.StatusInternalServerError,
		Name:    "internal_error",
		Message: err.Error(),
	}
}

func isValidation(err error) bool {
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return true
	}
	var sectionErr *sections.SectionError
	return errors.As(err, &sectionErr)
}

func issueDetails(err error) []validation.Issue {
	var sectionErr *sections.SectionError
	if errors.As(err, &sectionErr) && len(sectionErr.Issues) > 0 {
		return sectionErr.Issues
	}
	return validation.Issues(err)
}

// viewerFrom resolves the caller identity from the Authorization header. The
// comparison is constant time; an empty configured token disables editorial
// access entirely.
func (api *API) viewerFrom(r *http.Request) catalog.Viewer {
	if api.token == "" {
		return catalog.Viewer{}
	}
	header := r.Header.Get("Authorization")
	scheme, value, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(strings.TrimSpace(scheme), "Bearer") {
		return catalog.Viewer{}
	}
	supplied := strings.TrimSpace(value)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(api.token)) == 1 {
		return catalog.Viewer{Authenticated: true}
	}
	return catalog.Viewer{}
}

func (api *API) listRequestFrom(r *http.Request) catalog.ListRequest {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if api.maxPageSize > 0 && pageSize > api.maxPageSize {
		pageSize = api.maxPageSize
	}
	return catalog.ListRequest{
		ReadOptions: catalog.ReadOptions{
			Viewer:   api.viewerFrom(r),
			Status:   query.Get("status"),
			Populate: query.Get("populate"),
		},
		Page:     page,
		PageSize: pageSize,
		Sort:     query.Get("sort"),
	}
}

func (api *API) getRequestFrom(r *http.Request, key string) catalog.GetRequest {
	query := r.URL.Query()
	return catalog.GetRequest{
		ReadOptions: catalog.ReadOptions{
			Viewer:   api.viewerFrom(r),
			Status:   query.Get("status"),
			Populate: query.Get("populate"),
		},
		Key: key,
	}
}
