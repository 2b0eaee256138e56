package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rfpflow/internal/domain"
	"rfpflow/internal/handler"
	"rfpflow/internal/service"
	"rfpflow/mocks"
)

func runRequest(method, target string, id string, body []byte) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id}}
	return w, c
}

func TestRunHandler_GetByID_Success(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("GetRun", mock.Anything, id).Return(&domain.Run{ID: id, Status: domain.RunStatusPending, Title: "Laptops"}, nil)

	w, c := runRequest(http.MethodGet, "/api/v1/runs/"+id.String(), id.String(), nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Laptops", data["title"])
}

func TestRunHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)

	w, c := runRequest(http.MethodGet, "/api/v1/runs/nope", "nope", nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}

func TestRunHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("GetRun", mock.Anything, id).Return(nil, domain.ErrNotFound)

	w, c := runRequest(http.MethodGet, "/api/v1/runs/"+id.String(), id.String(), nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunHandler_Export_CSV(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("ExportQuote", mock.Anything, id, domain.ExportFormatCSV).Return(&service.QuoteFile{
		Filename:    "Laptops_2024-06-01.csv",
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte("Item,SKU\n"),
	}, nil)

	w, c := runRequest(http.MethodGet, "/api/v1/runs/"+id.String()+"/export", id.String(), nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Laptops_2024-06-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Item,SKU\n", w.Body.String())
}

func TestRunHandler_Export_UnknownFormat(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("ExportQuote", mock.Anything, id, domain.ExportFormat("pdf")).Return(nil, domain.ErrInvalidExportFormat)

	w, c := runRequest(http.MethodGet, "/api/v1/runs/"+id.String()+"/export?format=pdf", id.String(), nil)
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decode(t, w).Error.Code)
}

func TestRunHandler_UpdateStatus(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("UpdateStatus", mock.Anything, id, domain.RunStatusApproved).Return(nil)

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	w, c := runRequest(http.MethodPatch, "/api/v1/admin/runs/"+id.String()+"/status", id.String(), body)
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRunHandler_UpdateStatus_Invalid(t *testing.T) {
	svc := new(mocks.MockRunService)
	h := handler.NewRunHandler(svc)
	id := uuid.New()
	svc.On("UpdateStatus", mock.Anything, id, domain.RunStatus("archived")).Return(domain.ErrInvalidRunStatus)

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	w, c := runRequest(http.MethodPatch, "/api/v1/admin/runs/"+id.String()+"/status", id.String(), body)
	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", decode(t, w).Error.Code)
}
