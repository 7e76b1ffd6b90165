// Package api exposes the planner over HTTP. Handlers decode wire
// requests, call the service layer, and map domain errors to status
// codes; they hold no business logic of their own.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinya-planner/internal/domain"
	authsvc "pinya-planner/internal/service/auth"
	layoutsvc "pinya-planner/internal/service/layout"
	plannersvc "pinya-planner/internal/service/planner"
	rostersvc "pinya-planner/internal/service/roster"
)

// Handler serves the HTTP API.
type Handler struct {
	auth    *authsvc.Service
	layouts *layoutsvc.Service
	planner *plannersvc.Service
	roster  *rostersvc.Service
	logger  *slog.Logger
}

// NewHandler creates a Handler over the service layer.
func NewHandler(
	auth *authsvc.Service,
	layouts *layoutsvc.Service,
	planner *plannersvc.Service,
	roster *rostersvc.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:    auth,
		layouts: layouts,
		planner: planner,
		roster:  roster,
		logger:  logger.With("component", "api"),
	}
}

// Routes mounts the API. The caller wraps the returned groups in the
// auth middleware; handlers themselves stay auth-agnostic.
type Routes struct {
	// Public endpoints: login, check-in, published overview, role catalog.
	Public func(r chi.Router)
	// Member endpoints: require a valid token.
	Member func(r chi.Router)
	// Admin endpoints: layouts, planner sessions, roster administration.
	Admin func(r chi.Router)
}

// Routes returns the route groups for mounting.
func (h *Handler) Routes() Routes {
	return Routes{
		Public: func(r chi.Router) {
			r.Post("/auth/login", h.login)
			r.Post("/checkin", h.checkIn)
			r.Get("/overview", h.overview)
			r.Get("/roles", h.roleCatalog)
		},
		Member: func(r chi.Router) {
			r.Get("/members", h.listMembers)
			r.Get("/members/{nickname}", h.getMember)
			r.Get("/events", h.listEvents)
			r.Get("/attendance", h.attendanceOn)
		},
		Admin: func(r chi.Router) {
			r.Post("/members", h.createMember)
			r.Patch("/members/{nickname}", h.updateMember)
			r.Post("/events", h.createEvent)

			r.Get("/layouts", h.listLayouts)
			r.Get("/layouts/{id}", h.getLayout)
			r.Delete("/layouts/{id}", h.deleteLayout)
			r.Post("/layouts/publish", h.publishLayouts)
			r.Post("/layouts/unpublish", h.unpublishLayouts)

			r.Post("/planner/sessions", h.startSession)
			r.Route("/planner/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/", h.getSession)
				r.Delete("/", h.closeSession)
				r.Post("/roles", h.addRole)
				r.Delete("/roles/{instanceID}", h.trashRole)
				r.Post("/roles/{instanceID}/drop", h.dropMember)
				r.Post("/roles/{instanceID}/rotate", h.rotateRole)
				r.Post("/roles/{instanceID}/move", h.moveRole)
				r.Post("/roles/{instanceID}/clear", h.clearRole)
				r.Post("/autoassign", h.autoAssign)
				r.Post("/pool/refresh", h.refreshPool)
				r.Post("/save", h.saveSession)
				r.Post("/update", h.updateSession)
				r.Post("/load", h.loadLayout)
			})
		},
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	code := httpStatusFromDomainError(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	}
	h.writeJSON(w, code, errorResponse{Code: code, Message: err.Error()})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}
