package http

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/google/uuid"
)

type mediaCreatePayload struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Size   int64  `json:"size,omitempty"`
	Format string `json:"format,omitempty"`
}

func (api *API) registerMediaRoutes(mux *http.ServeMux, base string) {
	if api.media == nil {
		return
	}
	root := joinPath(base, "media")

	mux.HandleFunc("POST "+root, api.handleMediaCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleMediaGet)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleMediaDelete)
}

func (api *API) handleMediaCreate(w http.ResponseWriter, r *http.Request) {
	var payload mediaCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.media.Create(r.Context(), catalog.CreateMediaRequest{
		Viewer: api.viewerFrom(r),
		URL:    payload.URL,
		Width:  payload.Width,
		Height: payload.Height,
		Size:   payload.Size,
		Format: payload.Format,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handleMediaGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid media id",
		}})
		return
	}

	record, err := api.media.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.media.Delete(r.Context(), catalog.DeleteRequest{
		Viewer: api.viewerFrom(r),
		Key:    r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Status:  http.StatusNotFound,
			Name:    "not_found",
			Message: "media not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
