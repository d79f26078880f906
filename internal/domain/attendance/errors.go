package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidPunchKind = errors.New("invalid punch kind: allowed IN, OUT, BREAK_START, BREAK_END")
	ErrRangeTooLong     = errors.New("date range exceeds the allowed number of days")
)
