package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinya-planner/internal/domain"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	tok, err := h.auth.Login(r.Context(), req.Nickname, req.AdminKey)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: tok.AccessToken,
		ExpiresAt:   tok.ExpiresAt,
		IsAdmin:     tok.IsAdmin,
	})
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Date == "" {
		req.Date = domain.Today()
	}
	if err := h.roster.CheckIn(r.Context(), req.Nickname, req.Date); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.roster.ListMembers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, membersToAPI(members))
}

func (h *Handler) getMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.roster.GetMember(r.Context(), chi.URLParam(r, "nickname"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, memberToAPI(*m))
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	m, err := h.roster.CreateMember(r.Context(), domain.CreateMemberRequest{
		Nickname:  req.Nickname,
		Name:      req.Name,
		Surname:   req.Surname,
		Position:  req.Position,
		Position2: req.Position2,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, memberToAPI(*m))
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	m, err := h.roster.UpdateMember(r.Context(), chi.URLParam(r, "nickname"), domain.UpdateMemberRequest{
		Name:      req.Name,
		Surname:   req.Surname,
		Position:  req.Position,
		Position2: req.Position2,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, memberToAPI(*m))
}

func (h *Handler) attendanceOn(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.Today()
	}
	recs, err := h.roster.AttendanceOn(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]attendanceResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, attendanceResponse{Date: rec.Date, Nickname: rec.Nickname})
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.roster.ListEvents(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventToAPI(e))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	e, err := h.roster.CreateEvent(r.Context(), domain.CreateEventRequest{
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, eventToAPI(*e))
}

func (h *Handler) roleCatalog(w http.ResponseWriter, _ *http.Request) {
	catalog := domain.RoleCatalog()
	out := make([]roleTemplateResponse, 0, len(catalog))
	for _, tpl := range catalog {
		out = append(out, roleTemplateResponse{
			Label:  tpl.Label,
			Width:  tpl.Width,
			Height: tpl.Height,
			Color:  tpl.Color,
			IsBase: domain.IsBaseRole(tpl.Label),
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}
