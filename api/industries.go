package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/webert/crm/internal/models"
	"github.com/webert/crm/internal/validation"
	"github.com/webert/crm/pkg/repository"
)

type IndustriesHandler struct {
	industryRepo repository.IndustryRepo
}

func NewIndustriesHandler(ir repository.IndustryRepo) *IndustriesHandler {
	return &IndustriesHandler{industryRepo: ir}
}

func (h *IndustriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaIndustry, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	industry := models.Industry{Name: req.Name}
	id, err := h.industryRepo.CreateIndustry(ctx, &industry)
	if err != nil {
		writeServerError(w, "create industry", err)
		return
	}
	industry.ID = id

	writeJSON(w, industry, http.StatusCreated)
}

// ListAll returns every live industry, unfiltered. Used to populate pickers.
func (h *IndustriesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	industries, err := h.industryRepo.ListIndustries(r.Context())
	if err != nil {
		writeServerError(w, "list industries", err)
		return
	}

	writeJSON(w, industries, http.StatusOK)
}

func (h *IndustriesHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Name string `json:"name"`
		models.ListParams
	}{ListParams: models.ListParams{Order: "name", OrderType: "asc"}}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	items, count, err := h.industryRepo.SearchIndustries(r.Context(), models.IndustryFilter{
		Name:       req.Name,
		ListParams: req.ListParams,
	})
	if err != nil {
		writeServerError(w, "search industries", err)
		return
	}

	writeJSON(w, listResponse{Data: items, Count: count}, http.StatusOK)
}

func (h *IndustriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	industry, err := h.industryRepo.GetIndustryByID(r.Context(), id)
	if err != nil {
		writeServerError(w, "get industry", err)
		return
	}
	if industry == nil {
		writeMsg(w, http.StatusNotFound, "industry not found")
		return
	}

	writeJSON(w, industry, http.StatusOK)
}

func (h *IndustriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}

	ctx := r.Context()

	errs, err := validation.Check(ctx, validation.SchemaIndustry, body)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	if len(errs) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	industry, err := h.industryRepo.GetIndustryByID(ctx, id)
	if err != nil {
		writeServerError(w, "get industry", err)
		return
	}
	if industry == nil {
		writeMsg(w, http.StatusNotFound, "industry not found")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeMsg(w, http.StatusBadRequest, "invalid request")
		return
	}
	industry.Name = req.Name

	if err := h.industryRepo.UpdateIndustry(ctx, industry); err != nil {
		writeServerError(w, "update industry", err)
		return
	}

	writeJSON(w, industry, http.StatusOK)
}

// Delete soft-deletes an industry together with the companies assigned to it.
func (h *IndustriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	industry, err := h.industryRepo.SoftDeleteIndustry(r.Context(), id)
	if err != nil {
		writeServerError(w, "delete industry", err)
		return
	}
	if industry == nil {
		writeMsg(w, http.StatusNotFound, "industry not found")
		return
	}

	writeJSON(w, industry, http.StatusOK)
}
