package http

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/goliatone/go-catalog/internal/sections"
)

type pageCreatePayload struct {
	Slug     string                `json:"slug,omitempty"`
	Title    string                `json:"title"`
	Status   string                `json:"status,omitempty"`
	Sections []sections.RawSection `json:"sections,omitempty"`
}

type pageUpdatePayload struct {
	Slug     *string               `json:"slug,omitempty"`
	Title    *string               `json:"title,omitempty"`
	Status   *string               `json:"status,omitempty"`
	Sections []sections.RawSection `json:"sections,omitempty"`
}

func (api *API) registerPageRoutes(mux *http.ServeMux, base string) {
	if api.pages == nil {
		return
	}
	root := joinPath(base, "pages")

	mux.HandleFunc("GET "+root, api.handlePageList)
	mux.HandleFunc("POST "+root, api.handlePageCreate)
	mux.HandleFunc("GET "+root+"/{key}", api.handlePageGet)
	mux.HandleFunc("PUT "+root+"/{key}", api.handlePageUpdate)
	mux.HandleFunc("DELETE "+root+"/{key}", api.handlePageDelete)
}

func (api *API) handlePageList(w http.ResponseWriter, r *http.Request) {
	result, err := api.pages.List(r.Context(), api.listRequestFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, result.Items, result.Meta)
}

func (api *API) handlePageGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.pages.Get(r.Context(), api.getRequestFrom(r, r.PathValue("key")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handlePageCreate(w http.ResponseWriter, r *http.Request) {
	var payload pageCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.pages.Create(r.Context(), catalog.CreatePageRequest{
		Viewer:   api.viewerFrom(r),
		Slug:     payload.Slug,
		Title:    payload.Title,
		Status:   payload.Status,
		Sections: payload.Sections,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handlePageUpdate(w http.ResponseWriter, r *http.Request) {
	var payload pageUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.pages.Update(r.Context(), r.PathValue("key"), catalog.UpdatePageRequest{
		Viewer:   api.viewerFrom(r),
		Slug:     payload.Slug,
		Title:    payload.Title,
		Status:   payload.Status,
		Sections: payload.Sections,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handlePageDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.pages.Delete(r.Context(), catalog.DeleteRequest{
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
			Message: "page not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
