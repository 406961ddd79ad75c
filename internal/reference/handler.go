package reference

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-inventory/internal/auth"
	"github.com/frahmantamala/asset-inventory/internal/transport"
	"github.com/frahmantamala/asset-inventory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListReferences(kind Kind, filters ListFilters, page int) (*ListResponse, error)
	ListAllReferences(kind Kind) ([]*Reference, error)
	GetReference(kind Kind, id int64) (*Reference, error)
	CreateReference(kind Kind, dto ReferenceDTO, actor *auth.User) (*Reference, error)
	UpdateReference(kind Kind, id int64, dto ReferenceDTO, actor *auth.User) (*Reference, error)
	DeleteReference(kind Kind, id int64, actor *auth.User) error
}

// Handler serves all four lookup tables. The kind is fixed per route group by
// ForKind, so one handler value backs /sites, /areas, /departments and
// /positions.
type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	kind    Kind
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ForKind returns a copy of the handler bound to one lookup table.
func (h *Handler) ForKind(kind Kind) *Handler {
	bound := *h
	bound.kind = kind
	return &bound
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{Search: q.Get("search")}

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	resp, err := h.Service.ListReferences(h.kind, filters, page)
	if err != nil {
		h.Logger.Error("ListReferences: service error", "kind", h.kind, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	refs, err := h.Service.ListAllReferences(h.kind)
	if err != nil {
		h.Logger.Error("ListAllReferences: service error", "kind", h.kind, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"references": refs})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	ref, err := h.Service.GetReference(h.kind, id)
	if err != nil {
		h.Logger.Error("GetReference: service error", "kind", h.kind, "error", err, "id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ref)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ReferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateReference: invalid request body", "kind", h.kind, "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := h.Service.CreateReference(h.kind, dto, actor)
	if err != nil {
		h.Logger.Error("CreateReference: service error", "kind", h.kind, "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ref)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	var dto ReferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateReference: invalid request body", "kind", h.kind, "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ref, err := h.Service.UpdateReference(h.kind, id, dto, actor)
	if err != nil {
		h.Logger.Error("UpdateReference: service error", "kind", h.kind, "error", err, "id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ref)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid ID")
		return
	}

	if err := h.Service.DeleteReference(h.kind, id, actor); err != nil {
		h.Logger.Error("DeleteReference: service error", "kind", h.kind, "error", err, "id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
