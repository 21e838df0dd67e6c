package http

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/google/uuid"
)

type articleCreatePayload struct {
	Slug       string      `json:"slug,omitempty"`
	Title      string      `json:"title"`
	Body       string      `json:"body,omitempty"`
	Excerpt    *string     `json:"excerpt,omitempty"`
	Status     string      `json:"status,omitempty"`
	AuthorID   *uuid.UUID  `json:"author_id,omitempty"`
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	MediaIDs   []uuid.UUID `json:"media_ids,omitempty"`
}

type articleUpdatePayload struct {
	Slug       *string     `json:"slug,omitempty"`
	Title      *string     `json:"title,omitempty"`
	Body       *string     `json:"body,omitempty"`
	Excerpt    *string     `json:"excerpt,omitempty"`
	Status     *string     `json:"status,omitempty"`
	AuthorID   *uuid.UUID  `json:"author_id,omitempty"`
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	MediaIDs   []uuid.UUID `json:"media_ids,omitempty"`
}

func (api *API) registerArticleRoutes(mux *http.ServeMux, base string) {
	if api.articles == nil {
		return
	}
	root := joinPath(base, "articles")

	mux.HandleFunc("GET "+root, api.handleArticleList)
	mux.HandleFunc("POST "+root, api.handleArticleCreate)
	mux.HandleFunc("GET "+root+"/{key}", api.handleArticleGet)
	mux.HandleFunc("PUT "+root+"/{key}", api.handleArticleUpdate)
	mux.HandleFunc("DELETE "+root+"/{key}", api.handleArticleDelete)
}

func (api *API) handleArticleList(w http.ResponseWriter, r *http.Request) {
	result, err := api.articles.List(r.Context(), api.listRequestFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, result.Items, result.Meta)
}

func (api *API) handleArticleGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.articles.Get(r.Context(), api.getRequestFrom(r, r.PathValue("key")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleArticleCreate(w http.ResponseWriter, r *http.Request) {
	var payload articleCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.articles.Create(r.Context(), catalog.CreateArticleRequest{
		Viewer:     api.viewerFrom(r),
		Slug:       payload.Slug,
		Title:      payload.Title,
		Body:       payload.Body,
		Excerpt:    payload.Excerpt,
		Status:     payload.Status,
		AuthorID:   payload.AuthorID,
		CategoryID: payload.CategoryID,
		MediaIDs:   payload.MediaIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handleArticleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload articleUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.articles.Update(r.Context(), r.PathValue("key"), catalog.UpdateArticleRequest{
		Viewer:     api.viewerFrom(r),
		Slug:       payload.Slug,
		Title:      payload.Title,
		Body:       payload.Body,
		Excerpt:    payload.Excerpt,
		Status:     payload.Status,
		AuthorID:   payload.AuthorID,
		CategoryID: payload.CategoryID,
		MediaIDs:   payload.MediaIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleArticleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.articles.Delete(r.Context(), catalog.DeleteRequest{
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
			Message: "article not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
