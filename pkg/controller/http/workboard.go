package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pipehq/workboard/pkg/domain/model"
	"github.com/pipehq/workboard/pkg/domain/types"
	"github.com/pipehq/workboard/pkg/usecase"
	"github.com/pipehq/workboard/pkg/utils/errutil"
	"github.com/pipehq/workboard/pkg/utils/safe"
)

type columnPayload struct {
	ID      string `json:"id,omitempty"`
	Field   string `json:"field"`
	Label   string `json:"label"`
	Kind    string `json:"kind"`
	Formula string `json:"formula,omitempty"`
	Format  string `json:"format"`
	Width   int    `json:"width,omitempty"`
}

type filterPayload struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value,omitempty"`
}

type workboardPayload struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	EntityType string          `json:"entity_type"`
	Columns    []columnPayload `json:"columns"`
	Filters    []filterPayload `json:"filters"`
	IsDefault  bool            `json:"is_default"`
}

type availableColumnPayload struct {
	Field     string   `json:"field"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Format    string   `json:"format"`
	Operators []string `json:"operators"`
}

func toWorkboardPayload(wb *model.Workboard) workboardPayload {
	p := workboardPayload{
		ID:         wb.ID,
		Name:       wb.Name,
		EntityType: wb.EntityType.String(),
		Columns:    make([]columnPayload, len(wb.Columns)),
		Filters:    make([]filterPayload, len(wb.Filters)),
		IsDefault:  wb.IsDefault,
	}
	for i, col := range wb.Columns {
		p.Columns[i] = columnPayload{
			ID:      col.ID,
			Field:   col.Field,
			Label:   col.Label,
			Kind:    col.Kind.String(),
			Formula: col.Formula.String(),
			Format:  col.Format.String(),
			Width:   col.Width,
		}
	}
	for i, f := range wb.Filters {
		p.Filters[i] = filterPayload{
			Field:    f.Field,
			Operator: f.Operator.String(),
			Value:    f.Value,
		}
	}
	return p
}

func toModelColumns(payloads []columnPayload) []model.WorkboardColumn {
	columns := make([]model.WorkboardColumn, len(payloads))
	for i, p := range payloads {
		columns[i] = model.WorkboardColumn{
			ID:      p.ID,
			Field:   p.Field,
			Label:   p.Label,
			Kind:    types.ColumnKind(p.Kind),
			Formula: types.FormulaType(p.Formula),
			Format:  types.ValueFormat(p.Format),
			Width:   p.Width,
		}
	}
	return columns
}

func toModelFilters(payloads []filterPayload) []model.WorkboardFilter {
	filters := make([]model.WorkboardFilter, len(payloads))
	for i, p := range payloads {
		filters[i] = model.WorkboardFilter{
			Field:    p.Field,
			Operator: types.FilterOperator(p.Operator),
			Value:    normalizeFilterValue(p.Value),
		}
	}
	return filters
}

// normalizeFilterValue converts JSON arrays into []string so membership
// operators see the type the evaluator expects. Numeric and boolean members
// are stringified, not dropped.
func normalizeFilterValue(v any) any {
	if values, ok := model.StringValues(v); ok {
		return values
	}
	return v
}

// errStatus maps the engine's sentinel errors to HTTP status codes
func errStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrWorkboardNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDefaultViewImmutable),
		errors.Is(err, model.ErrFormulaFieldReadOnly),
		errors.Is(err, model.ErrFieldNotEditable):
		return http.StatusForbidden
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrInvalidFilterOperator),
		errors.Is(err, model.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}
	return true
}

func entityTypeParam(w http.ResponseWriter, r *http.Request) (types.EntityType, bool) {
	et, err := types.ParseEntityType(chi.URLParam(r, "entityType"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return "", false
	}
	return et, true
}

func (s *Server) handleColumnCatalog(w http.ResponseWriter, r *http.Request) {
	entityType, ok := entityTypeParam(w, r)
	if !ok {
		return
	}

	catalog := s.uc.View.ColumnCatalog(entityType)
	resp := struct {
		Columns []availableColumnPayload `json:"columns"`
	}{Columns: make([]availableColumnPayload, len(catalog))}
	for i, entry := range catalog {
		resp.Columns[i] = toAvailablePayload(entry)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func toAvailablePayload(entry model.AvailableColumn) availableColumnPayload {
	operators := types.OperatorsFor(entry.Format)
	names := make([]string, len(operators))
	for i, op := range operators {
		names[i] = op.String()
	}
	return availableColumnPayload{
		Field:     entry.Field,
		Label:     entry.Label,
		Kind:      entry.Kind.String(),
		Format:    entry.Format.String(),
		Operators: names,
	}
}

func (s *Server) handleListWorkboards(w http.ResponseWriter, r *http.Request) {
	entityType, ok := entityTypeParam(w, r)
	if !ok {
		return
	}

	boards, err := s.uc.View.ListWorkboards(r.Context(), tenantFromContext(r.Context()), entityType)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}

	resp := struct {
		Workboards []workboardPayload `json:"workboards"`
	}{Workboards: make([]workboardPayload, len(boards))}
	for i, wb := range boards {
		resp.Workboards[i] = toWorkboardPayload(wb)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleGetWorkboard(w http.ResponseWriter, r *http.Request) {
	wb, err := s.uc.View.GetWorkboard(r.Context(), tenantFromContext(r.Context()), chi.URLParam(r, "workboardID"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleCreateWorkboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string          `json:"name"`
		EntityType string          `json:"entity_type"`
		Columns    []columnPayload `json:"columns"`
		Filters    []filterPayload `json:"filters"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	entityType, err := types.ParseEntityType(req.EntityType)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	wb, err := s.uc.View.CreateWorkboard(r.Context(), tenantFromContext(r.Context()), entityType,
		req.Name, toModelColumns(req.Columns), toModelFilters(req.Filters))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusCreated, toWorkboardPayload(wb))
}

func (s *Server) handleSaveView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string          `json:"name"`
		Columns []columnPayload `json:"columns"`
		Filters []filterPayload `json:"filters"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	wb, err := s.uc.View.SaveView(r.Context(), tenantFromContext(r.Context()), chi.URLParam(r, "workboardID"),
		req.Name, toModelColumns(req.Columns), toModelFilters(req.Filters))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleDeleteWorkboard(w http.ResponseWriter, r *http.Request) {
	err := s.uc.View.DeleteWorkboard(r.Context(), tenantFromContext(r.Context()), chi.URLParam(r, "workboardID"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	wb, err := s.uc.View.AddColumn(r.Context(), tenantFromContext(r.Context()), chi.URLParam(r, "workboardID"), req.Field)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleRemoveColumn(w http.ResponseWriter, r *http.Request) {
	wb, err := s.uc.View.RemoveColumn(r.Context(), tenantFromContext(r.Context()),
		chi.URLParam(r, "workboardID"), chi.URLParam(r, "field"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleMoveColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index     int    `json:"index"`
		Direction string `json:"direction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Direction != "up" && req.Direction != "down" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("direction must be up or down",
			goerr.V("direction", req.Direction)), http.StatusBadRequest)
		return
	}

	wb, err := s.uc.View.MoveColumn(r.Context(), tenantFromContext(r.Context()),
		chi.URLParam(r, "workboardID"), req.Index, req.Direction == "up")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleAddFilter(w http.ResponseWriter, r *http.Request) {
	var req filterPayload
	if !decodeJSON(w, r, &req) {
		return
	}

	filters := toModelFilters([]filterPayload{req})
	wb, err := s.uc.View.AddFilter(r.Context(), tenantFromContext(r.Context()),
		chi.URLParam(r, "workboardID"), filters[0])
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleRemoveFilter(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid filter index"), http.StatusBadRequest)
		return
	}

	wb, err := s.uc.View.RemoveFilter(r.Context(), tenantFromContext(r.Context()),
		chi.URLParam(r, "workboardID"), index)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, toWorkboardPayload(wb))
}

func (s *Server) handleAvailableColumns(w http.ResponseWriter, r *http.Request) {
	available, err := s.uc.View.AvailableColumns(r.Context(), tenantFromContext(r.Context()), chi.URLParam(r, "workboardID"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}

	resp := struct {
		Columns []availableColumnPayload `json:"columns"`
	}{Columns: make([]availableColumnPayload, len(available))}
	for i, entry := range available {
		resp.Columns[i] = toAvailablePayload(entry)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page          int    `json:"page"`
		SortField     string `json:"sort_field"`
		SortDirection string `json:"sort_direction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	tenantID := tenantFromContext(r.Context())
	workboardID := chi.URLParam(r, "workboardID")
	page, err := s.uc.Query.Query(r.Context(), tenantID, workboardID,
		usecase.QueryInput{
			Page:          req.Page,
			SortField:     req.SortField,
			SortDirection: types.SortDirection(req.SortDirection),
		})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}

	// A concurrent query for the same workboard may have started while this
	// one was computing. Flag the superseded page so the client drops it
	// instead of rendering rows out of order.
	writeJSON(w, r, http.StatusOK, struct {
		Rows    []model.DataRow `json:"rows"`
		Total   int             `json:"total"`
		HasMore bool            `json:"has_more"`
		Seq     uint64          `json:"seq"`
		Stale   bool            `json:"stale"`
	}{
		Rows:    page.Rows,
		Total:   page.Total,
		HasMore: page.HasMore,
		Seq:     page.Seq,
		Stale:   s.uc.Query.IsStale(tenantID, workboardID, page.Seq),
	})
}

func (s *Server) handleEditCell(w http.ResponseWriter, r *http.Request) {
	if _, ok := entityTypeParam(w, r); !ok {
		return
	}

	var req struct {
		WorkboardID string `json:"workboard_id"`
		Field       string `json:"field"`
		Value       any    `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	row, err := s.uc.Edit.ApplyEdit(r.Context(), tenantFromContext(r.Context()), req.WorkboardID,
		chi.URLParam(r, "recordID"), req.Field, req.Value)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, errStatus(err))
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Row model.DataRow `json:"row"`
	}{Row: row})
}

func (s *Server) handleValidateFilter(w http.ResponseWriter, r *http.Request) {
	entityType, ok := entityTypeParam(w, r)
	if !ok {
		return
	}

	var req filterPayload
	if !decodeJSON(w, r, &req) {
		return
	}

	filters := toModelFilters([]filterPayload{req})
	if err := s.uc.View.ValidateFilter(entityType, filters[0]); err != nil {
		resp := struct {
			Valid bool   `json:"valid"`
			Error string `json:"error"`
		}{Valid: false, Error: err.Error()}
		writeJSON(w, r, http.StatusOK, resp)
		return
	}
	writeJSON(w, r, http.StatusOK, struct {
		Valid bool `json:"valid"`
	}{Valid: true})
}
