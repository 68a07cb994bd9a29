package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stcadmin/backend/internal/domain/shared"
	"github.com/stcadmin/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.NewDomainError("NOT_FOUND", "Order not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "conflict on duplicate filing",
			err:            shared.NewDomainError("ALREADY_FILED", "Shipment already filed"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_FILED",
		},
		{
			name:           "disabled destination",
			err:            shared.NewDomainError("DESTINATION_DISABLED", "Destination is disabled"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "DESTINATION_DISABLED",
		},
		{
			name:           "invalid id",
			err:            shared.ErrInvalidID,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_ID",
		},
		{
			name: "wrapped carrier failure",
			err: shared.WrapDomainError("FILING_FAILED", "Filing failed",
				shared.NewDomainError("CARRIER_TIMEOUT", "timed out")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "FILING_FAILED",
		},
		{
			name:           "unknown error does not leak",
			err:            errors.New("pq: connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			if tt.expectedCode == "INTERNAL" {
				assert.NotContains(t, resp.Error.Message, "pq:")
			}
		})
	}
}
