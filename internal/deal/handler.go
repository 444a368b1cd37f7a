package deal

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	dealDatamodel "github.com/voltmover/crm/internal/core/datamodel/deal"
	"github.com/voltmover/crm/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateDealDTO) (*Deal, error)
	GetByID(id int64) (*Deal, error)
	List(params ListParams) ([]*Deal, error)
	Update(id int64, dto UpdateDealDTO) (*Deal, error)
	Delete(id int64) error
	PipelineStats() ([]StageStat, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{Limit: 100}

	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		if skip, err := strconv.Atoi(skipStr); err == nil && skip >= 0 {
			params.Skip = skip
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			params.Limit = limit
		}
	}
	if stageStr := r.URL.Query().Get("stage"); stageStr != "" {
		stage := dealDatamodel.Stage(stageStr)
		if !stage.Valid() {
			h.WriteError(w, http.StatusUnprocessableEntity, "invalid deal stage")
			return
		}
		params.Stage = &stage
	}
	params.Search = r.URL.Query().Get("search")

	deals, err := h.Service.List(params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, deals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deal ID")
		return
	}

	found, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deal ID")
		return
	}

	var dto UpdateDealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid deal ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Deal deleted successfully"})
}

func (h *Handler) PipelineStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.PipelineStats()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
