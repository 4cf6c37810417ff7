package restrepo

import (
	"context"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/diary"
)

type attendanceRecorder struct {
	c        *Client
	endpoint string
	logger   core.Logger
}

var _ diary.AttendanceRecorder = (*attendanceRecorder)(nil)

// NewAttendanceRecorder posts sheets to endpoint. With no endpoint the backend
// has nowhere to store attendance and submissions are only simulated.
func NewAttendanceRecorder(c *Client, endpoint string, logger core.Logger) diary.AttendanceRecorder {
	return &attendanceRecorder{c: c, endpoint: endpoint, logger: logger}
}

func (r *attendanceRecorder) RecordAttendance(ctx context.Context, sheet diary.AttendanceSheet) (diary.AttendanceResult, error) {
	res := diary.AttendanceResult{Records: len(sheet.Records)}
	if r.endpoint == "" {
		r.logger.Info("attendance submission simulated", map[string]interface{}{
			"turma_id":  sheet.ClassID,
			"presencas": len(sheet.Records),
		})
		res.Simulated = true
		return res, nil
	}
	if err := r.c.post(ctx, r.endpoint, sheet, nil); err != nil {
		return diary.AttendanceResult{}, err
	}
	return res, nil
}
