package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljoud/shifts-backend/internal/metrics"
	"github.com/aljoud/shifts-backend/internal/scheduling/events"
	"github.com/aljoud/shifts-backend/internal/scheduling/repository"
	"github.com/aljoud/shifts-backend/internal/scheduling/service"
	"github.com/aljoud/shifts-backend/pkg/database"
	"github.com/aljoud/shifts-backend/pkg/logger"
)

func newShiftTestServer(t *testing.T) (*httptest.Server, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "test")
	db := database.FromSqlx(sqlx.NewDb(mockDB, "sqlmock"), log)
	bus := events.NewBus(log)
	m := metrics.New(prometheus.NewRegistry())

	shiftRepo := repository.NewShiftRepository(db)
	timeOffRepo := repository.NewTimeOffRepository(db)
	scheduler := service.NewScheduler(shiftRepo, timeOffRepo, bus, m, log)

	r := chi.NewRouter()
	r.Route("/shifts", NewShiftHandler(scheduler, timeOffRepo, log).Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv, mock
}

func TestShiftCreateEndpoint(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("creates a shift on a free window", func(t *testing.T) {
		srv, mock := newShiftTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM shifts`)).
			WithArgs(int64(1), day, "09:00:00", "17:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shifts`)).
			WithArgs(int64(1), int64(1), day, "09:00:00", "17:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))

		resp, err := http.Post(srv.URL+"/shifts", "application/json", strings.NewReader(`{
			"employee_id": 1, "branch_id": 1, "date": "2025-03-10",
			"start_time": "09:00:00", "end_time": "17:00:00"
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeResponse(t, resp)
		assert.True(t, body.Success)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlap is reported as a shift conflict", func(t *testing.T) {
		srv, mock := newShiftTestServer(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM shifts`)).
			WithArgs(int64(1), day, "16:00:00", "20:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`ORDER BY start_time`).
			WithArgs(int64(1), day, "16:00:00", "20:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "branch_id", "date", "start_time", "end_time", "created_at"}).
				AddRow(int64(9), int64(1), int64(1), day, "09:00:00", "17:00:00", time.Now()))

		resp, err := http.Post(srv.URL+"/shifts", "application/json", strings.NewReader(`{
			"employee_id": 1, "branch_id": 1, "date": "2025-03-10",
			"start_time": "16:00:00", "end_time": "20:00:00"
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeResponse(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "SHIFT_CONFLICT", body.Error.Code)
		assert.Equal(t, "09:00:00", body.Error.Details["start"])
	})

	t.Run("inverted window never reaches the store", func(t *testing.T) {
		srv, mock := newShiftTestServer(t)

		resp, err := http.Post(srv.URL+"/shifts", "application/json", strings.NewReader(`{
			"employee_id": 1, "branch_id": 1, "date": "2025-03-10",
			"start_time": "17:00:00", "end_time": "09:00:00"
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		srv, _ := newShiftTestServer(t)

		resp, err := http.Post(srv.URL+"/shifts", "application/json", strings.NewReader(`{
			"employee_id": 1
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeResponse(t, resp)
		require.NotNil(t, body.Error)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	})
}

func TestShiftRangeEndpoint(t *testing.T) {
	t.Run("empty selection is a no-op", func(t *testing.T) {
		srv, mock := newShiftTestServer(t)

		resp, err := http.Post(srv.URL+"/shifts/range", "application/json", strings.NewReader(`{
			"branch_id": 1, "from_date": "2025-03-10", "to_date": "2025-03-12",
			"start_time": "09:00:00", "end_time": "17:00:00",
			"employee_ids": []
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeResponse(t, resp)
		outcome, ok := body.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Zero(t, outcome["added"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inverted date range is rejected", func(t *testing.T) {
		srv, _ := newShiftTestServer(t)

		resp, err := http.Post(srv.URL+"/shifts/range", "application/json", strings.NewReader(`{
			"branch_id": 1, "from_date": "2025-03-12", "to_date": "2025-03-10",
			"start_time": "09:00:00", "end_time": "17:00:00",
			"employee_ids": [1]
		}`))
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
