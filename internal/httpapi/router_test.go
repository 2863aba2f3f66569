package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/varsity-sched/engine/internal/httpapi"
	appmetrics "github.com/varsity-sched/engine/pkg/metrics"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	noop := func(c *gin.Context) { c.Next() }
	return httpapi.NewRouter("/v1", zap.NewNop(), noop, appmetrics.New(), 2)
}

func TestHealthz_ReturnsOK(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSchedule_RejectsMissingFields(t *testing.T) {
	router := testRouter()
	body, _ := json.Marshal(map[string]any{"institute_id": "inst-1"})
	req := httptest.NewRequest(http.MethodPost, "/v1/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSchedule_ValidRequestReturnsSchedule(t *testing.T) {
	router := testRouter()
	payload := map[string]any{
		"institute_id": "inst-1",
		"semester":     2,
		"students": []map[string]any{
			{"id": "s1", "preferences": []map[string]any{{"course_id": "e1", "rank": 1}}},
		},
		"courses": []map[string]any{
			{"id": "c1", "type": "theory", "hours_per_week": 2, "max_students_per_section": 30},
			{"id": "e1", "type": "elective", "elective": true, "elective_capacity": 1, "hours_per_week": 2, "max_students_per_section": 30},
		},
		"faculty": []map[string]any{
			{"id": "f1", "teachable_courses": []string{"c1", "e1"}, "max_hours_per_week": 10},
		},
		"rooms": []map[string]any{
			{"id": "r1", "type": "lecture", "capacity": 30},
		},
		"time_slots": []map[string]any{
			{"id": 1, "day": 1, "period": 1, "start": "08:00:00", "end": "09:00:00"},
			{"id": 2, "day": 1, "period": 2, "start": "09:00:00", "end": "10:00:00"},
		},
		"seed": 1,
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/schedules", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
