package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lessonstore/internal/dto"
	apperrors "lessonstore/internal/errors"
)

type mockCreateOrderUseCase struct {
	CreateOrderFunc func(ctx context.Context, req dto.CreateOrderRequest) (string, error)
}

func (m *mockCreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
	return m.CreateOrderFunc(ctx, req)
}

func postOrder(uc CreateOrderUseCase, body string) *httptest.ResponseRecorder {
	c := NewCreateOrderController(uc, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.CreateOrder(w, req)
	return w
}

const validOrderBody = `{
	"name": "Ada Lovelace",
	"phone": "07000000000",
	"email": "ada@example.com",
	"address": "12 Analytical Row",
	"items": [{"lessonId": "65f0c0ffee0000000000aaaa", "quantity": 2}]
}`

func TestCreateOrder_Created(t *testing.T) {
	var got dto.CreateOrderRequest
	uc := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
			got = req
			return "65f0c0ffee0000000000cccc", nil
		},
	}

	w := postOrder(uc, validOrderBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true, "orderId": "65f0c0ffee0000000000cccc"}`, w.Body.String())

	assert.Equal(t, "Ada Lovelace", got.Name)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "65f0c0ffee0000000000aaaa", got.Items[0].LessonID)
	assert.Equal(t, json.Number("2"), got.Items[0].Quantity)
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	uc := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
			t.Fatal("use case must not be called for invalid JSON")
			return "", nil
		},
	}

	w := postOrder(uc, `{"name": "Ada",`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, dto.CodeValidation, resp.Code)
}

func TestCreateOrder_ValidationError(t *testing.T) {
	uc := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
			return "", apperrors.NewValidationError("Missing required order fields",
				apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})
		},
	}

	w := postOrder(uc, `{"name": "Ada"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Missing required order fields", resp.Message)
	require.Len(t, resp.Details, 1)
	assert.Equal(t, "items", resp.Details[0].Field)
}

func TestCreateOrder_StoreError(t *testing.T) {
	uc := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
			return "", errors.New("inserting order: no reachable servers")
		},
	}

	w := postOrder(uc, validOrderBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "no reachable servers")
	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Failed to create order", resp.Message)
}

func TestCreateOrder_ItemValuesPassedAsSent(t *testing.T) {
	var got dto.CreateOrderRequest
	uc := &mockCreateOrderUseCase{
		CreateOrderFunc: func(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
			got = req
			return "65f0c0ffee0000000000cccc", nil
		},
	}

	w := postOrder(uc, `{
		"name": "Ada", "phone": "1", "email": "a@b.c", "address": "x",
		"items": [{"lessonId": 42, "quantity": "2"}, {"lessonId": "abc"}]
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, got.Items, 2)
	assert.Equal(t, json.Number("42"), got.Items[0].LessonID)
	assert.Equal(t, "2", got.Items[0].Quantity)
	assert.Nil(t, got.Items[1].Quantity)
}
