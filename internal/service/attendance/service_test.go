package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/greythr-lite/hrms-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo keeps records in memory keyed by employee and day, with
// the same one-record-per-day guarantee the real table enforces. missReads
// makes the next N lookups come back empty, simulating a lookup that raced an
// insert from another request.
type fakeAttendanceRepo struct {
	records   map[string]attendance.Attendance
	missReads int
	nextID    int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	k := f.key(att.EmployeeID, att.Date)
	if _, exists := f.records[k]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateDay
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[k] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if f.missReads > 0 {
		f.missReads--
		return nil, nil
	}
	att, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	k := f.key(att.EmployeeID, att.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[k] = att
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) GetOpenSessions(ctx context.Context, olderThanHours int) ([]attendance.Attendance, error) {
	var open []attendance.Attendance
	for _, att := range f.records {
		if att.PunchIn != nil && att.PunchOut == nil {
			open = append(open, att)
		}
	}
	return open, nil
}

func (f *fakeAttendanceRepo) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

func ctxWithEmployee(t *testing.T, employeeID string) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "u1",
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestClockIn(t *testing.T) {
	ctx := ctxWithEmployee(t, "emp-1")

	t.Run("creates record with punch in", func(t *testing.T) {
		svc := NewAttendanceService(nil, newFakeAttendanceRepo())

		got, err := svc.ClockIn(ctx)
		require.NoError(t, err)
		assert.Equal(t, "emp-1", got.EmployeeID)
		assert.NotNil(t, got.PunchIn)
		assert.Nil(t, got.PunchOut)
		assert.Equal(t, "present", got.Status)
	})

	t.Run("second clock-in same day returns existing record", func(t *testing.T) {
		svc := NewAttendanceService(nil, newFakeAttendanceRepo())

		first, err := svc.ClockIn(ctx)
		require.NoError(t, err)

		second, err := svc.ClockIn(ctx)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.PunchIn, second.PunchIn)
	})

	t.Run("losing a concurrent insert returns the winner's record", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := NewAttendanceService(nil, repo)

		winner, err := svc.ClockIn(ctx)
		require.NoError(t, err)

		// The next lookup misses, so the service inserts, hits the
		// unique index and falls back to a re-read.
		repo.missReads = 1

		got, err := svc.ClockIn(ctx)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, got.ID)
		assert.Equal(t, winner.PunchIn, got.PunchIn)
		assert.Len(t, repo.records, 1)
	})
}

func TestClockOut(t *testing.T) {
	ctx := ctxWithEmployee(t, "emp-1")

	t.Run("closes the open session", func(t *testing.T) {
		svc := NewAttendanceService(nil, newFakeAttendanceRepo())

		_, err := svc.ClockIn(ctx)
		require.NoError(t, err)

		got, err := svc.ClockOut(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got.PunchOut)
		assert.NotNil(t, got.WorkMinutes)
	})

	t.Run("without clock-in", func(t *testing.T) {
		svc := NewAttendanceService(nil, newFakeAttendanceRepo())

		_, err := svc.ClockOut(ctx)
		assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	})

	t.Run("twice", func(t *testing.T) {
		svc := NewAttendanceService(nil, newFakeAttendanceRepo())

		_, err := svc.ClockIn(ctx)
		require.NoError(t, err)
		_, err = svc.ClockOut(ctx)
		require.NoError(t, err)

		_, err = svc.ClockOut(ctx)
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})
}
