package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinya-planner/internal/domain"
)

func (h *Handler) listLayouts(w http.ResponseWriter, r *http.Request) {
	var folder *string
	if r.URL.Query().Has("folder") {
		f := r.URL.Query().Get("folder")
		folder = &f
	}
	layouts, err := h.layouts.List(r.Context(), folder)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, layoutsToAPI(layouts))
}

func (h *Handler) getLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.layouts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, layoutToAPI(*l))
}

func (h *Handler) deleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := h.layouts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) publishLayouts(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	mode := domain.PublishDated
	if req.Global {
		mode = domain.PublishGlobal
	}
	err := h.layouts.Publish(r.Context(), domain.PublishRequest{
		LayoutIDs: req.LayoutIDs,
		Mode:      mode,
		Date:      req.Date,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unpublishLayouts(w http.ResponseWriter, r *http.Request) {
	var req unpublishRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.layouts.Unpublish(r.Context(), req.LayoutIDs); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// overview is the public read of published layouts for a date.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.Today()
	}
	layouts, err := h.layouts.VisibleOn(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, layoutsToAPI(layouts))
}
