package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinya-planner/internal/domain"
	plannersvc "pinya-planner/internal/service/planner"
)

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	mode := domain.PoolMode(req.Mode)
	if req.Mode == "" {
		mode = domain.PoolAll
	}
	sess, err := h.planner.StartSession(r.Context(), domain.PoolRequest{
		Mode:    mode,
		Date:    req.Date,
		EventID: req.EventID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, sessionToAPI(sess))
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	h.planner.CloseSession(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addRole(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req addRoleRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if req.Label == "" {
		h.writeError(w, domain.ErrValidation("role label is required"))
		return
	}
	ri := sess.AddRole(req.Label)
	h.writeJSON(w, http.StatusCreated, roleInstanceToAPI(ri))
}

func (h *Handler) trashRole(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.DragRoleToTrash(chi.URLParam(r, "instanceID")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) dropMember(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req dropMemberRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.DropMemberOnRole(chi.URLParam(r, "instanceID"), req.Nickname); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) rotateRole(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if _, err := sess.RotateRole(chi.URLParam(r, "instanceID")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) moveRole(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req moveRoleRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.MoveRole(chi.URLParam(r, "instanceID"), req.X, req.Y); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) clearRole(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.ClearRole(chi.URLParam(r, "instanceID")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) autoAssign(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	sess.AutoAssign()
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) refreshPool(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.RefreshPool(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req saveSessionRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	report, err := sess.Save(r.Context(), req.Name, req.Folder, req.CastellType)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saveSessionResponse{
		Layout:  layoutToAPI(*report.Layout),
		Updated: report.Updated,
	})
}

func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	l, err := sess.Update(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, layoutToAPI(*l))
}

func (h *Handler) loadLayout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req loadLayoutRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := sess.LoadLayout(r.Context(), req.LayoutID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sessionToAPI(sess))
}

func (h *Handler) session(r *http.Request) (*plannersvc.Session, error) {
	return h.planner.Session(chi.URLParam(r, "sessionID"))
}

func sessionToAPI(sess *plannersvc.Session) sessionResponse {
	return sessionResponse{
		SessionID: sess.ID,
		LayoutID:  sess.LayoutID(),
		Instances: roleInstancesToAPI(sess.Instances()),
		Pool:      membersToAPI(sess.Pool()),
	}
}
