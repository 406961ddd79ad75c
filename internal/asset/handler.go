package asset

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-inventory/internal/auth"
	assetDatamodel "github.com/frahmantamala/asset-inventory/internal/core/datamodel/asset"
	"github.com/frahmantamala/asset-inventory/internal/transport"
	"github.com/frahmantamala/asset-inventory/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListAssets(filters ListFilters, page int, actor *auth.User) (*ListResponse, error)
	GetAsset(id int64, actor *auth.User) (*Asset, error)
	CreateAsset(dto CreateAssetDTO, actor *auth.User) (*Asset, error)
	UpdateAsset(id int64, dto UpdateAssetDTO, actor *auth.User) (*Asset, error)
	DeleteAsset(id int64, actor *auth.User) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
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

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	filters := ListFilters{
		CategoryID: queryInt64(q.Get("category_id")),
		Condition:  q.Get("condition"),
		SiteID:     queryInt64(q.Get("site_id")),
		AreaID:     queryInt64(q.Get("area_id")),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	resp, err := h.Service.ListAssets(filters, page, actor)
	if err != nil {
		h.Logger.Error("ListAssets: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	a, err := h.Service.GetAsset(id, actor)
	if err != nil {
		h.Logger.Error("GetAsset: service error", "error", err, "asset_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAsset(dto, actor)
	if err != nil {
		h.Logger.Error("CreateAsset: service error", "error", err, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAsset: asset created", "asset_id", a.ID, "actor_id", actor.ID)
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAsset(id, dto, actor)
	if err != nil {
		h.Logger.Error("UpdateAsset: service error", "error", err, "asset_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	if err := h.Service.DeleteAsset(id, actor); err != nil {
		h.Logger.Error("DeleteAsset: service error", "error", err, "asset_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// FilterOptions returns the option lists the create/edit forms render.
type FilterOptions struct {
	Conditions []string `json:"conditions"`
	Statuses   []string `json:"statuses"`
}

func (h *Handler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, FilterOptions{
		Conditions: assetDatamodel.Conditions(),
		Statuses:   assetDatamodel.Statuses(),
	})
}

func queryInt64(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
