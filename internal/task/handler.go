package task

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/voltmover/crm/internal/auth"
	taskDatamodel "github.com/voltmover/crm/internal/core/datamodel/task"
	"github.com/voltmover/crm/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateTaskDTO) (*Task, error)
	GetByID(id int64) (*Task, error)
	List(params ListParams) ([]*Task, error)
	ListForAssignee(assigneeID int64, params ListParams) ([]*Task, error)
	Update(id int64, dto UpdateTaskDTO) (*Task, error)
	Delete(id int64) error
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
	var dto CreateTaskDTO
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
	params, ok := h.parseListParams(w, r)
	if !ok {
		return
	}

	if assigneeStr := r.URL.Query().Get("assignee_id"); assigneeStr != "" {
		assigneeID, err := strconv.ParseInt(assigneeStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid assignee_id")
			return
		}
		params.AssigneeID = &assigneeID
	}
	if overdueStr := r.URL.Query().Get("overdue"); overdueStr != "" {
		overdue, err := strconv.ParseBool(overdueStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid overdue flag")
			return
		}
		params.Overdue = overdue
	}

	tasks, err := h.Service.List(params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tasks)
}

// My lists the tasks assigned to the authenticated caller.
func (h *Handler) My(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok || caller == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	params, okParams := h.parseListParams(w, r)
	if !okParams {
		return
	}

	tasks, err := h.Service.ListForAssignee(caller.ID, params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tasks)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid task ID")
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
		h.WriteError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var dto UpdateTaskDTO
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
		h.WriteError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// parseListParams reads the pagination and enum filters shared by List and
// My. It writes the error response itself and returns ok=false when a
// filter value is outside its closed set.
func (h *Handler) parseListParams(w http.ResponseWriter, r *http.Request) (ListParams, bool) {
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
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := taskDatamodel.Status(statusStr)
		if !status.Valid() {
			h.WriteError(w, http.StatusUnprocessableEntity, "invalid task status")
			return params, false
		}
		params.Status = &status
	}
	if priorityStr := r.URL.Query().Get("priority"); priorityStr != "" {
		priority := taskDatamodel.Priority(priorityStr)
		if !priority.Valid() {
			h.WriteError(w, http.StatusUnprocessableEntity, "invalid task priority")
			return params, false
		}
		params.Priority = &priority
	}

	return params, true
}
