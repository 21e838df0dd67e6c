package http

import (
	"net/http"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/google/uuid"
)

type productCreatePayload struct {
	Slug        string      `json:"slug,omitempty"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Price       float64     `json:"price"`
	Status      string      `json:"status,omitempty"`
	AuthorID    *uuid.UUID  `json:"author_id,omitempty"`
	CategoryID  *uuid.UUID  `json:"category_id,omitempty"`
	MediaIDs    []uuid.UUID `json:"media_ids,omitempty"`
}

type productUpdatePayload struct {
	Slug        *string     `json:"slug,omitempty"`
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Status      *string     `json:"status,omitempty"`
	AuthorID    *uuid.UUID  `json:"author_id,omitempty"`
	CategoryID  *uuid.UUID  `json:"category_id,omitempty"`
	MediaIDs    []uuid.UUID `json:"media_ids,omitempty"`
}

func (api *API) registerProductRoutes(mux *http.ServeMux, base string) {
	if api.products == nil {
		return
	}
	root := joinPath(base, "products")

	mux.HandleFunc("GET "+root, api.handleProductList)
	mux.HandleFunc("POST "+root, api.handleProductCreate)
	mux.HandleFunc("GET "+root+"/{key}", api.handleProductGet)
	mux.HandleFunc("PUT "+root+"/{key}", api.handleProductUpdate)
	mux.HandleFunc("DELETE "+root+"/{key}", api.handleProductDelete)
}

func (api *API) handleProductList(w http.ResponseWriter, r *http.Request) {
	result, err := api.products.List(r.Context(), api.listRequestFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, result.Items, result.Meta)
}

func (api *API) handleProductGet(w http.ResponseWriter, r *http.Request) {
	record, err := api.products.Get(r.Context(), api.getRequestFrom(r, r.PathValue("key")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	var payload productCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.products.Create(r.Context(), catalog.CreateProductRequest{
		Viewer:      api.viewerFrom(r),
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Status:      payload.Status,
		AuthorID:    payload.AuthorID,
		CategoryID:  payload.CategoryID,
		MediaIDs:    payload.MediaIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, record)
}

func (api *API) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	var payload productUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Status:  http.StatusBadRequest,
			Name:    "bad_request",
			Message: "invalid JSON payload",
		}})
		return
	}

	record, err := api.products.Update(r.Context(), r.PathValue("key"), catalog.UpdateProductRequest{
		Viewer:      api.viewerFrom(r),
		Slug:        payload.Slug,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Status:      payload.Status,
		AuthorID:    payload.AuthorID,
		CategoryID:  payload.CategoryID,
		MediaIDs:    payload.MediaIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, record)
}

func (api *API) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := api.products.Delete(r.Context(), catalog.DeleteRequest{
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
			Message: "product not found",
		}})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
