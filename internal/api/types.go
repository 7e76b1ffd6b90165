package api

import (
	"time"

	"pinya-planner/internal/domain"
)

// Wire types. Field names follow the stored layout shape so exported
// layouts and API payloads stay interchangeable.

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type memberResponse struct {
	Nickname  string `json:"nickname"`
	Name      string `json:"name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	Position  string `json:"position,omitempty"`
	Position2 string `json:"position2,omitempty"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

func memberToAPI(m domain.Member) memberResponse {
	return memberResponse{
		Nickname:  m.Nickname,
		Name:      m.Name,
		Surname:   m.Surname,
		Position:  m.Position,
		Position2: m.Position2,
		IsAdmin:   m.IsAdmin,
	}
}

func membersToAPI(ms []domain.Member) []memberResponse {
	out := make([]memberResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, memberToAPI(m))
	}
	return out
}

type createMemberRequest struct {
	Nickname  string `json:"nickname"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Position  string `json:"position"`
	Position2 string `json:"position2"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateMemberRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	Position  *string `json:"position"`
	Position2 *string `json:"position2"`
	IsAdmin   *bool   `json:"is_admin"`
}

type roleInstanceResponse struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Rotation int              `json:"rotation"`
	Members  []memberResponse `json:"members"`
}

func roleInstanceToAPI(ri domain.RoleInstance) roleInstanceResponse {
	return roleInstanceResponse{
		ID:       ri.ID,
		Label:    ri.Label,
		X:        ri.X,
		Y:        ri.Y,
		Rotation: ri.Rotation,
		Members:  membersToAPI(ri.Members),
	}
}

func roleInstancesToAPI(ris []domain.RoleInstance) []roleInstanceResponse {
	out := make([]roleInstanceResponse, 0, len(ris))
	for _, ri := range ris {
		out = append(out, roleInstanceToAPI(ri))
	}
	return out
}

type layoutResponse struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	Folder         string                 `json:"folder,omitempty"`
	CastellType    string                 `json:"castell_type,omitempty"`
	Positions      []roleInstanceResponse `json:"positions"`
	PublishedDates []string               `json:"published_dates"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func layoutToAPI(l domain.Layout) layoutResponse {
	dates := l.PublishedDates
	if dates == nil {
		dates = []string{}
	}
	return layoutResponse{
		ID:             l.ID,
		Name:           l.Name,
		Folder:         l.Folder,
		CastellType:    l.CastellType,
		Positions:      roleInstancesToAPI(l.Positions),
		PublishedDates: dates,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func layoutsToAPI(ls []domain.Layout) []layoutResponse {
	out := make([]layoutResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, layoutToAPI(l))
	}
	return out
}

type publishRequest struct {
	LayoutIDs []string `json:"layout_ids"`
	Global    bool     `json:"global"`
	Date      string   `json:"date"`
}

type unpublishRequest struct {
	LayoutIDs []string `json:"layout_ids"`
}

type roleTemplateResponse struct {
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
	IsBase bool   `json:"is_base"`
}

type loginRequest struct {
	Nickname string `json:"nickname"`
	AdminKey string `json:"admin_key"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsAdmin     bool      `json:"is_admin"`
}

type checkInRequest struct {
	Nickname string `json:"nickname"`
	Date     string `json:"date"`
}

type attendanceResponse struct {
	Date     string `json:"date"`
	Nickname string `json:"nickname"`
}

type createEventRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

type eventResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Notes    string `json:"notes,omitempty"`
}

func eventToAPI(e domain.Event) eventResponse {
	return eventResponse{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date,
		Location: e.Location,
		Notes:    e.Notes,
	}
}

type startSessionRequest struct {
	Mode    string `json:"mode"`
	Date    string `json:"date"`
	EventID string `json:"event_id"`
}

type sessionResponse struct {
	SessionID string                 `json:"session_id"`
	LayoutID  string                 `json:"layout_id,omitempty"`
	Instances []roleInstanceResponse `json:"instances"`
	Pool      []memberResponse       `json:"pool"`
}

type addRoleRequest struct {
	Label string `json:"label"`
}

type dropMemberRequest struct {
	Nickname string `json:"nickname"`
}

type moveRoleRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type saveSessionRequest struct {
	Name        string `json:"name"`
	Folder      string `json:"folder"`
	CastellType string `json:"castell_type"`
}

type saveSessionResponse struct {
	Layout  layoutResponse `json:"layout"`
	Updated bool           `json:"updated"`
}

type loadLayoutRequest struct {
	LayoutID string `json:"layout_id"`
}
