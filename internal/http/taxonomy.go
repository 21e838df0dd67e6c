package http

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
)

type authorCreatePayload struct {
	Slug   string  `json:"slug,omitempty"`
	Name   string  `json:"name"`
	Bio    *string `json:"bio,omitempty"`
	Status string  `json:"status,omitempty"`
}

type authorUpdatePayload struct {
	Slug   *string `json:"slug,omitempty"`
	Name   *string `json:"name,omitempty"`
	Bio    *string `json:"bio,omitempty"`
	Status *string `json:"status,omitempty"`
}

type categoryCreatePayload struct {
	Slug        string  `json:"slug,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type categoryUpdatePayload struct {
	Slug        *string `json:"slug,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (api *API) registerTaxonomyRoutes(mux *http.ServeMux, base string) {
	if api.authors != nil {
		root := joinPath(base, "authors")
		mux.HandleFunc("GET "+root, api.handleAuthorList)
		mux.HandleFunc("POST "+root, api.handleAuthorCreate)
		mux.HandleFunc("GET "+root+"/{key}", api.handleAuthorGet)
		mux.HandleFunc("PUT "+root+"/{key}", api.handleAuthorUpdate)
		mux.HandleFunc("DELETE "+root+"/{key}", api.handleAuthorDelete)
	}

	if api.category != nil {
		root := joinPath(base, "categories")
		mux.HandleFunc("GET "+root, api.handleCategoryList)
		mux.HandleFunc("POST "+root, api.handleCategoryCreate)
		mux.HandleFunc("GET "+root+"/{key}", api.handleCategoryGet)
		mux.HandleFunc("PUT "+root+"/{key}", api.handleCategoryUpdate)
		mux.HandleFunc("DELETE "+root+"/{key}", api.handleCategoryDelete)
	}
}

func (api *API) handleAuthorList(w http.ResponseWriter, r *http.Request) {
	result, err := api.authors.List(r.Context(), api.listRequestFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, result.Items, result.Meta)
}

func (api *API) handleAuthorGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.authors.Get(r.Context(), api.getRequestFrom(r, r.PathValue("key")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleAuthorCreate(w http.ResponseWriter, r *http.Request) {
	var payload authorCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.authors.Create(r.Context(), catalog.CreateAuthorRequest{
		Viewer: api.viewerFrom(r),
		Slug:   payload.Slug,
		Name:   payload.Name,
		Bio:    payload.Bio,
		Status: payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handleAuthorUpdate(w http.ResponseWriter, r *http.Request) {
	var payload authorUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.authors.Update(r.Context(), r.PathValue("key"), catalog.UpdateAuthorRequest{
		Viewer: api.viewerFrom(r),
		Slug:   payload.Slug,
		Name:   payload.Name,
		Bio:    payload.Bio,
		Status: payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleAuthorDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.authors.Delete(r.Context(), catalog.DeleteRequest{
		Viewer: api.viewerFrom(r),
		Key:    r.PathValue("key"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Status:  http.StatusNotFound,
			Name:    "not_found",
			Message: "author not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	result, err := api.category.List(r.Context(), api.listRequestFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, result.Items, result.Meta)
}

func (api *API) handleCategoryGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.category.Get(r.Context(), api.getRequestFrom(r, r.PathValue("key")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleCategoryCreate(w http.ResponseWriter, r *http.Request) {
	var payload categoryCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.category.Create(r.Context(), catalog.CreateCategoryRequest{
		Viewer:      api.viewerFrom(r),
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		Status:      payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handleCategoryUpdate(w http.ResponseWriter, r *http.Request) {
	var payload categoryUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.category.Update(r.Context(), r.PathValue("key"), catalog.UpdateCategoryRequest{
		Viewer:      api.viewerFrom(r),
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		Status:      payload.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleCategoryDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.category.Delete(r.Context(), catalog.DeleteRequest{
		Viewer: api.viewerFrom(r),
		Key:    r.PathValue("key"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Status:  http.StatusNotFound,
			Name:    "not_found",
			Message: "category not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
