package academic

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"
)

// Queue statuses. Only AGUARDANDO is set by the client; the others are reached server-side.
const (
	StatusAwaiting  = "AGUARDANDO"
	StatusAllocated = "ALOCADO"
	StatusCancelled = "CANCELADO"
)

// PassingTotal is the council total below which a subject is flagged.
const PassingTotal = 60.0

type (
	// Class is a turma: a cohort of students for a given year and shift.
	Class struct {
		ID    int    `json:"id" validate:"gt=0"`
		Name  string `json:"nome" validate:"required"`
		Year  int    `json:"ano"`
		Shift string `json:"turno"`
	}

	// Enrollment (matrícula) links a student to a class; attendance and grades are keyed by its ID.
	Enrollment struct {
		ID        int    `json:"id" validate:"gt=0"`
		StudentID int    `json:"aluno_id"`
		Name      string `json:"nome"`
	}

	QueueEntry struct {
		ID          int         `json:"id" validate:"gt=0"`
		StudentID   int         `json:"aluno_id" validate:"gt=0"`
		StudentName string      `json:"aluno_nome"`
		SchoolID    null.Int    `json:"escola_id"`
		SchoolName  null.String `json:"escola_nome"`
		RequestDate string      `json:"data_solicitacao"`
		Status      string      `json:"status"`
	}

	// QueueEntryInput asks for a vacancy; a null SchoolID lets zoning pick the school.
	QueueEntryInput struct {
		StudentID int      `json:"aluno_id" validate:"gt=0"`
		SchoolID  null.Int `json:"escola_id"`
	}

	SubjectTotal struct {
		Subject string  `json:"disciplina"`
		Total   float64 `json:"total"`
	}

	// CouncilRow is one student's line in the class council report.
	CouncilRow struct {
		StudentName string         `json:"aluno_nome"`
		Grades      []SubjectTotal `json:"notas"`
	}
)

// Label renders the class the way selectors show it, e.g. "5A (2024)".
func (c Class) Label() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Year)
}

func (e QueueEntry) IsAwaiting() bool {
	return e.Status == StatusAwaiting
}

// DesiredSchool is the requested school's name, or the zoning fallback.
func (e QueueEntry) DesiredSchool() string {
	if e.SchoolName.Valid && e.SchoolName.String != "" {
		return e.SchoolName.String
	}
	return "Zoneamento Automático"
}

// CouncilSubjects returns the subject columns of the report, taken from the first row.
func CouncilSubjects(rows []CouncilRow) []string {
	if len(rows) == 0 {
		return nil
	}
	subjects := make([]string, 0, len(rows[0].Grades))
	for _, g := range rows[0].Grades {
		subjects = append(subjects, g.Subject)
	}
	return subjects
}

func (t SubjectTotal) Failing() bool {
	return t.Total < PassingTotal
}

// Repository is the backend's academic area.
type Repository interface {
	ListClasses(ctx context.Context) ([]Class, error)
	ListEnrollments(ctx context.Context, classID int) ([]Enrollment, error)
	ClassCouncil(ctx context.Context, classID int) ([]CouncilRow, error)

	ListQueue(ctx context.Context) ([]QueueEntry, error)
	Enqueue(ctx context.Context, in QueueEntryInput) (QueueEntry, error)
	Dequeue(ctx context.Context, id int) error
}
