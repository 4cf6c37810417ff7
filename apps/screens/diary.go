package screens

import (
	"context"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/draft"
	"github.com/trezcool/sge/core/mutation"
	"github.com/trezcool/sge/core/query"
)

const (
	attendanceSaved     = "Chamada realizada com sucesso"
	attendanceSimulated = "Chamada realizada com sucesso (Simulação)"
)

// Diary is the class attendance page: pick a class, toggle presences, submit the whole roster.
type Diary struct {
	logger   core.Logger
	classes  *query.List[[]academic.Class]
	roster   *query.Dependent[int, []academic.Enrollment]
	presence *draft.Draft[int, bool]
	submit   *mutation.Mutation[diary.AttendanceSheet, diary.AttendanceResult]
}

func NewDiary(env Env, repo academic.Repository, recorder diary.AttendanceRecorder) *Diary {
	d := &Diary{
		logger:   env.Logger,
		classes:  query.NewList(env.Client, KeyClasses, repo.ListClasses),
		roster:   query.NewDependent(env.Client, KeyRoster, repo.ListEnrollments),
		presence: draft.New[int, bool](),
	}
	// every student starts present
	d.roster.OnResult(func(_ int, enrollments []academic.Enrollment) {
		ids := make([]int, 0, len(enrollments))
		present := make(map[int]bool, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.ID)
			present[e.ID] = true
		}
		d.presence.Seed(ids, present)
	})
	d.roster.OnReset(d.presence.Clear)

	d.submit = newMutation(env, recorder.RecordAttendance).
		SuccessMessageFunc(func(res diary.AttendanceResult) string {
			if res.Simulated {
				return attendanceSimulated
			}
			return attendanceSaved
		}).
		ErrorTitle(saveFailedTitle)
	return d
}

func (d *Diary) Classes(ctx context.Context) ([]academic.Class, error) { return d.classes.Load(ctx) }

// SelectClass loads the roster of classID, seeding every presence to true. 0 clears.
func (d *Diary) SelectClass(ctx context.Context, classID int) ([]academic.Enrollment, error) {
	if d.presence.Dirty() {
		d.logger.Info("discarding unsaved attendance")
	}
	return d.roster.Select(ctx, classID)
}

// Unsaved reports presence edits made since the roster was loaded.
func (d *Diary) Unsaved() bool { return d.presence.Dirty() }

func (d *Diary) Class() (int, bool) { return d.roster.Parent() }

func (d *Diary) Roster() query.State[[]academic.Enrollment] { return d.roster.View() }

// Reload refetches the roster, discarding unsaved presences.
func (d *Diary) Reload(ctx context.Context) ([]academic.Enrollment, error) {
	return d.roster.Refetch(ctx, true)
}

func (d *Diary) SetPresent(enrollmentID int, present bool) error {
	return d.presence.Set(enrollmentID, present)
}

// Toggle flips the presence of enrollmentID.
func (d *Diary) Toggle(enrollmentID int) error {
	present, _ := d.presence.Get(enrollmentID)
	return d.presence.Set(enrollmentID, !present)
}

func (d *Diary) Presence() map[int]bool { return d.presence.Snapshot() }

func (d *Diary) Pending() bool { return d.submit.Pending() }

// Submit sends the whole roster at once.
func (d *Diary) Submit(ctx context.Context) (diary.AttendanceResult, error) {
	classID, ok := d.roster.Parent()
	if !ok || d.presence.Len() == 0 {
		return diary.AttendanceResult{}, ErrNoSelection
	}
	return d.submit.Run(ctx, diary.NewAttendanceSheet(classID, d.presence.Snapshot()))
}
