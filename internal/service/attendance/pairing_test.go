package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/bizday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seq int64

// punchAt builds a punch at a UTC+9 wall clock on 2025-10-17.
func punchAt(employeeID string, kind attendance.PunchKind, clock string, note ...string) attendance.Punch {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	return punchOn(employeeID, kind, time.Date(2025, 10, 17, t.Hour(), t.Minute(), 0, 0, time.UTC), note...)
}

func punchOn(employeeID string, kind attendance.PunchKind, localClock time.Time, note ...string) attendance.Punch {
	n := ""
	if len(note) > 0 {
		n = note[0]
	}
	p := attendance.NewPunch(employeeID, kind, bizday.FromLocalClock(localClock), n)
	seq++
	p.ID = seq
	return p
}

func TestPairIntervals_StandardDay(t *testing.T) {
	punches := []attendance.Punch{
		punchAt("e1", attendance.PunchIn, "09:00"),
		punchAt("e1", attendance.PunchBreakStart, "12:00"),
		punchAt("e1", attendance.PunchBreakEnd, "12:30"),
		punchAt("e1", attendance.PunchOut, "18:00"),
	}

	p := PairIntervals(punches, attendance.DoubleInFirstWins)
	require.Len(t, p.Work, 1)
	require.Len(t, p.Break, 1)
	assert.Equal(t, 540, p.Work[0].Minutes())
	assert.Equal(t, 30, p.Break[0].Minutes())
	assert.True(t, p.Work[0].Contains(p.Break[0]))
}

func TestPairIntervals_InputOrderDoesNotMatter(t *testing.T) {
	in := punchAt("e1", attendance.PunchIn, "09:00")
	out := punchAt("e1", attendance.PunchOut, "17:00")

	a := PairIntervals([]attendance.Punch{in, out}, attendance.DoubleInFirstWins)
	b := PairIntervals([]attendance.Punch{out, in}, attendance.DoubleInFirstWins)
	assert.Equal(t, a, b)
	require.Len(t, a.Work, 1)
	assert.Equal(t, 480, a.Work[0].Minutes())
}

func TestPairIntervals_EqualTimestampsUseID(t *testing.T) {
	// OUT recorded before IN at the same instant: nothing open when OUT is seen
	out := punchAt("e1", attendance.PunchOut, "09:00")
	in := punchAt("e1", attendance.PunchIn, "09:00")
	p := PairIntervals([]attendance.Punch{in, out}, attendance.DoubleInFirstWins)
	assert.Empty(t, p.Work)
}

func TestPairIntervals_Unterminated(t *testing.T) {
	tests := []struct {
		name    string
		punches []attendance.Punch
		work    int
		breaks  int
	}{
		{
			name:    "lone IN",
			punches: []attendance.Punch{punchAt("e1", attendance.PunchIn, "09:00")},
		},
		{
			name:    "dangling OUT",
			punches: []attendance.Punch{punchAt("e1", attendance.PunchOut, "18:00")},
		},
		{
			name: "break start without work",
			punches: []attendance.Punch{
				punchAt("e1", attendance.PunchBreakStart, "12:00"),
				punchAt("e1", attendance.PunchBreakEnd, "12:30"),
			},
		},
		{
			name: "open break dropped at OUT",
			punches: []attendance.Punch{
				punchAt("e1", attendance.PunchIn, "09:00"),
				punchAt("e1", attendance.PunchBreakStart, "12:00"),
				punchAt("e1", attendance.PunchOut, "13:00"),
			},
			work: 1,
		},
		{
			name: "OUT before IN is not credited",
			punches: []attendance.Punch{
				punchAt("e1", attendance.PunchOut, "08:00"),
				punchAt("e1", attendance.PunchIn, "09:00"),
			},
		},
		{
			name: "zero length span",
			punches: []attendance.Punch{
				punchAt("e1", attendance.PunchIn, "09:00"),
				punchAt("e1", attendance.PunchOut, "09:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PairIntervals(tt.punches, attendance.DoubleInFirstWins)
			assert.Len(t, p.Work, tt.work)
			assert.Len(t, p.Break, tt.breaks)
		})
	}
}

func TestPairIntervals_DoubleIn(t *testing.T) {
	punches := []attendance.Punch{
		punchAt("e1", attendance.PunchIn, "09:00"),
		punchAt("e1", attendance.PunchBreakStart, "10:00"),
		punchAt("e1", attendance.PunchIn, "11:00"),
		punchAt("e1", attendance.PunchOut, "12:00"),
	}

	first := PairIntervals(punches, attendance.DoubleInFirstWins)
	require.Len(t, first.Work, 1)
	assert.Equal(t, 180, first.Work[0].Minutes())

	reopen := PairIntervals(punches, attendance.DoubleInCloseAndReopen)
	require.Len(t, reopen.Work, 2)
	assert.Equal(t, 120, reopen.Work[0].Minutes())
	assert.Equal(t, 60, reopen.Work[1].Minutes())
	assert.Empty(t, reopen.Break)
}

func TestPairIntervals_MultipleSpans(t *testing.T) {
	punches := []attendance.Punch{
		punchAt("e1", attendance.PunchIn, "08:00"),
		punchAt("e1", attendance.PunchOut, "12:00"),
		punchAt("e1", attendance.PunchIn, "13:00"),
		punchAt("e1", attendance.PunchOut, "17:15"),
	}

	p := PairIntervals(punches, attendance.DoubleInFirstWins)
	require.Len(t, p.Work, 2)
	assert.Equal(t, 240, p.Work[0].Minutes())
	assert.Equal(t, 255, p.Work[1].Minutes())
	assert.True(t, p.Work[0].End.Before(p.Work[1].Start))
}
