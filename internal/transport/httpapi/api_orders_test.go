package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	orderactivities "github.com/belandja/commerce-api/internal/durable/temporal/activities/orders"
)

func respondRecorded(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	respondOrderServiceError(c, err)
	return recorder
}

func TestRespondOrderServiceError_WorkflowValidationKeepsFields(t *testing.T) {
	// A rejection returning from a workflow run carries no wrapped cause;
	// the field violations arrive as error details and must come back as
	// the same validation problem the in-process path produces.
	fields := map[string]string{"grandTotal": "grandTotal must not be negative"}
	err := temporal.NewNonRetryableApplicationError(
		"order validation failed: grandTotal", orderactivities.OrderRejectedErrorType, nil, fields)

	recorder := respondRecorded(t, err)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var problem struct {
		Type       string `json:"type"`
		Extensions struct {
			Fields map[string]string `json:"fields"`
		} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "/problems/validation-error", problem.Type)
	require.Equal(t, fields, problem.Extensions.Fields)
}

func TestRespondOrderServiceError_WorkflowRejectionWithoutFields(t *testing.T) {
	err := temporal.NewNonRetryableApplicationError(
		"insufficient stock for product p-1", orderactivities.OrderRejectedErrorType, nil)

	recorder := respondRecorded(t, err)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var problem struct {
		Type   string `json:"type"`
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	require.Equal(t, "/problems/bad-request", problem.Type)
	require.Equal(t, "insufficient stock for product p-1", problem.Detail)
}
