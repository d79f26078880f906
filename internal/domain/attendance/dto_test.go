package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParsePunchKind(t *testing.T) {
	for _, s := range []string{"IN", "out", " Break_Start ", "BREAK_END"} {
		_, err := ParsePunchKind(s)
		assert.NoError(t, err, s)
	}
	_, err := ParsePunchKind("LUNCH")
	assert.ErrorIs(t, err, ErrInvalidPunchKind)
}

func TestNewPunch_FixesBusinessDay(t *testing.T) {
	// 23:30 JST on the 17th is 14:30 UTC
	at := time.Date(2025, 10, 17, 23, 30, 0, 0, time.FixedZone("JST", 9*3600))
	p := NewPunch("e1", PunchOut, at, "late")
	assert.Equal(t, time.Date(2025, 10, 17, 14, 30, 0, 0, time.UTC), p.OccurredAt)
	assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), p.BusinessDay)
}

func TestSubmitPunchRequest_Validate(t *testing.T) {
	req := SubmitPunchRequest{Type: "in", PunchedAt: strPtr("2025-10-18T09:00:00")}
	require.NoError(t, req.Validate())
	assert.Equal(t, PunchIn, req.Kind())
	require.NotNil(t, req.OccurredAt())
	assert.Equal(t, time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC), *req.OccurredAt())

	noTime := SubmitPunchRequest{Type: "OUT"}
	require.NoError(t, noTime.Validate())
	assert.Nil(t, noTime.OccurredAt())

	bad := SubmitPunchRequest{Type: "NAP", PunchedAt: strPtr("soon")}
	err := bad.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "type")
	assert.Contains(t, verrs.ToMap(), "punched_at")
}

func TestParseRange(t *testing.T) {
	today := time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)

	from, to, err := ParseRange("", "", today)
	require.NoError(t, err)
	assert.Equal(t, today, from)
	assert.Equal(t, today, to)

	from, to, err = ParseRange("2025-10-20", "2025-10-01", today)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), to)

	from, to, err = ParseRange("2025-10-05", "", today)
	require.NoError(t, err)
	assert.Equal(t, from, to)

	_, _, err = ParseRange("10/05/2025", "2025-13-01", today)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	_, _, err = ParseRange("2024-01-01", "2025-06-01", today)
	assert.ErrorIs(t, err, ErrRangeTooLong)
}

func TestParseDoubleInPolicy(t *testing.T) {
	p, ok := ParseDoubleInPolicy("")
	assert.True(t, ok)
	assert.Equal(t, DoubleInFirstWins, p)

	p, ok = ParseDoubleInPolicy("CLOSE_AND_REOPEN")
	assert.True(t, ok)
	assert.Equal(t, DoubleInCloseAndReopen, p)

	_, ok = ParseDoubleInPolicy("last_wins")
	assert.False(t, ok)
}
