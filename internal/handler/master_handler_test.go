package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoloner/qoloner-api/internal/models"
	"github.com/qoloner/qoloner-api/internal/service"
	"github.com/qoloner/qoloner-api/internal/utils"
)

type stubMasterRepo struct {
	existing *models.Master
}

func (s *stubMasterRepo) GetByTelegram(ctx context.Context, telegram string) (*models.Master, error) {
	if s.existing != nil {
		return s.existing, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubMasterRepo) Create(ctx context.Context, master *models.Master) error {
	master.ID = 11
	return nil
}

func newMasterRouter(repo *stubMasterRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService("test-secret", time.Hour)
	h := NewMasterHandler(service.NewMasterService(repo, tokens))

	r := gin.New()
	r.POST("/v1/masters/register", h.Register)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, target string, body interface{}) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMasterHandler_Register_Success(t *testing.T) {
	r := newMasterRouter(&stubMasterRepo{})

	w, resp := postJSON(t, r, "/v1/masters/register", gin.H{
		"name":     "Айгерим",
		"city":     "Алматы",
		"telegram": "@aigerim_crafts",
		"phone":    "+7 777 123-45-67",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Регистрация успешна", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["submission_token"])

	master, ok := data["master"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(11), master["id"])
}

func TestMasterHandler_Register_ValidationError(t *testing.T) {
	r := newMasterRouter(&stubMasterRepo{})

	w, resp := postJSON(t, r, "/v1/masters/register", gin.H{
		"name":     "Айгерим",
		"city":     "Алматы",
		"telegram": "notanat",
		"phone":    "+7 777 123-45-67",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "telegram", resp.Error.Field)
	assert.Equal(t, "Telegram должен начинаться с @", resp.Error.Message)
}

func TestMasterHandler_Register_DuplicateTelegram(t *testing.T) {
	r := newMasterRouter(&stubMasterRepo{
		existing: &models.Master{ID: 3, Telegram: "@aigerim_crafts"},
	})

	w, resp := postJSON(t, r, "/v1/masters/register", gin.H{
		"name":     "Айгерим",
		"city":     "Алматы",
		"telegram": "@aigerim_crafts",
		"phone":    "+7 777 123-45-67",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_TELEGRAM", resp.Error.Code)
	assert.Equal(t, "Мастерица с таким Telegram уже зарегистрирована", resp.Error.Message)
}

func TestMasterHandler_Register_InvalidBody(t *testing.T) {
	r := newMasterRouter(&stubMasterRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/masters/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_BODY", resp.Error.Code)
}
