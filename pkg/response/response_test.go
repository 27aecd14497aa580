package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("request_id", "req-1")

	resp := Success(c, 0, map[string]int{"weeklyGoal": 200}, "Goal updated!", nil)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body APIResponse[map[string]int]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Equal(t, "Goal updated!", body.Message)
	assert.Equal(t, 200, body.Data["weeklyGoal"])
}

func TestError_Aborts(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error[any](c, http.StatusNotFound, "exercise not found", nil)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body APIResponse[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "exercise not found", body.Message)
	assert.Nil(t, body.Data)
}

func TestSuccess_EmptySliceKeepsData(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Success(c, http.StatusOK, []string{}, "", nil)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}
