package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ledgerline/contracts/internal/httpx"
	"github.com/ledgerline/contracts/internal/models"
	"github.com/ledgerline/contracts/internal/services"
)

// ContractHandler exposes the lifecycle hooks over JSON.
type ContractHandler struct {
	Svc *services.ContractService
}

func NewContractHandler(svc *services.ContractService) *ContractHandler {
	return &ContractHandler{Svc: svc}
}

const dateLayout = "2006-01-02"

type termPayload struct {
	Idx         int    `json:"idx"`
	Requirement string `json:"requirement"`
	Fulfilled   bool   `json:"fulfilled"`
	Notes       string `json:"notes"`
}

type contractPayload struct {
	Name               string        `json:"name"`
	PartyType          string        `json:"party_type"`
	PartyName          string        `json:"party_name"`
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	IsSigned           bool          `json:"is_signed"`
	RequiresFulfilment bool          `json:"requires_fulfilment"`
	FulfilmentDeadline string        `json:"fulfilment_deadline"`
	FulfilmentTerms    []termPayload `json:"fulfilment_terms"`
	ContractTemplate   string        `json:"contract_template"`
	ProjectTemplateID  *uint         `json:"project_template_id"`
	ContractTerms      string        `json:"contract_terms"`
	DocumentType       string        `json:"document_type"`
	DocumentName       string        `json:"document_name"`
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create: POST /contracts
func (h *ContractHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contractPayload
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Name == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_name", nil)
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil || start == nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_start_date", nil)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_end_date", nil)
		return
	}
	deadline, err := parseDate(req.FulfilmentDeadline)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_fulfilment_deadline", nil)
		return
	}

	c := models.Contract{
		Name:               req.Name,
		PartyType:          req.PartyType,
		PartyName:          req.PartyName,
		StartDate:          *start,
		EndDate:            end,
		IsSigned:           req.IsSigned,
		RequiresFulfilment: req.RequiresFulfilment,
		FulfilmentDeadline: deadline,
		ContractTemplate:   req.ContractTemplate,
		ProjectTemplateID:  req.ProjectTemplateID,
		ContractTerms:      req.ContractTerms,
		DocumentType:       req.DocumentType,
		DocumentName:       req.DocumentName,
	}
	for _, t := range req.FulfilmentTerms {
		c.FulfilmentTerms = append(c.FulfilmentTerms, models.FulfilmentTerm{
			Idx: t.Idx, Requirement: t.Requirement, Fulfilled: t.Fulfilled, Notes: t.Notes,
		})
	}

	if err := h.Svc.Create(r.Context(), &c); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// List: GET /contracts
func (h *ContractHandler) List(w http.ResponseWriter, r *http.Request) {
	f := services.ListFilter{
		PartyName: r.URL.Query().Get("party_name"),
		PartyType: r.URL.Query().Get("party_type"),
		Status:    r.URL.Query().Get("status"),
	}
	out, err := h.Svc.List(r.Context(), f)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_contracts", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out, "total": len(out)})
}

// Get: GET /contracts/get?name=...
func (h *ContractHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.Get(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Update: PUT /contracts/update — drafts take the full validation path,
// submitted contracts the post-submission path with its projections.
func (h *ContractHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req contractPayload
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	c, err := h.Svc.Get(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	end, err := parseDate(req.EndDate)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_end_date", nil)
		return
	}
	deadline, err := parseDate(req.FulfilmentDeadline)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_fulfilment_deadline", nil)
		return
	}

	// Fields editable at any stage before cancellation.
	c.IsSigned = req.IsSigned
	c.RequiresFulfilment = req.RequiresFulfilment
	c.FulfilmentDeadline = deadline
	if req.FulfilmentTerms != nil {
		c.FulfilmentTerms = nil
		for _, t := range req.FulfilmentTerms {
			c.FulfilmentTerms = append(c.FulfilmentTerms, models.FulfilmentTerm{
				Idx: t.Idx, Requirement: t.Requirement, Fulfilled: t.Fulfilled, Notes: t.Notes,
			})
		}
	}

	// Structural fields stay frozen once submitted.
	if c.Docstatus == models.DocstatusDraft {
		if req.PartyType != "" {
			c.PartyType = req.PartyType
		}
		if req.PartyName != "" {
			c.PartyName = req.PartyName
		}
		if start, perr := parseDate(req.StartDate); perr == nil && start != nil {
			c.StartDate = *start
		}
		c.EndDate = end
		c.ContractTemplate = req.ContractTemplate
		c.ProjectTemplateID = req.ProjectTemplateID
		c.ContractTerms = req.ContractTerms
		c.DocumentType = req.DocumentType
		c.DocumentName = req.DocumentName
	}

	if err := h.Svc.Update(r.Context(), c); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Submit: POST /contracts/submit?name=...
func (h *ContractHandler) Submit(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.Submit(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Cancel: POST /contracts/cancel?name=...
func (h *ContractHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	c, err := h.Svc.Cancel(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Fulfilment: POST /contracts/fulfilment
func (h *ContractHandler) Fulfilment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		FulfilledIdx []int  `json:"fulfilled_idx"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	c, err := h.Svc.MarkFulfilment(r.Context(), req.Name, req.FulfilledIdx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Events: GET /contracts/events?start=...&end=...
func (h *ContractHandler) Events(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil || start == nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_start", nil)
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil || end == nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_end", nil)
		return
	}
	f := services.ListFilter{
		PartyName: r.URL.Query().Get("party_name"),
		PartyType: r.URL.Query().Get("party_type"),
	}
	entries, qerr := h.Svc.EventsBetween(r.Context(), *start, *end, f)
	if qerr != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_query_events", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries})
}

// PartyUsers: GET /contracts/party-users?party_type=...&party_name=...&txt=...
func (h *ContractHandler) PartyUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.Svc.PartyUsers(r.Context(), q.Get("party_type"), q.Get("party_name"), q.Get("txt"))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_search_users", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": users})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidation(err); ok {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Violations)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrBadTransition):
		httpx.JSONError(w, http.StatusConflict, "invalid_transition", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
