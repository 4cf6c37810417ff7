package inmemdb

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/academic"
)

type academicRepository struct {
	db *DB
}

func NewAcademicRepository(db *DB) academic.Repository {
	return &academicRepository{db: db}
}

func (repo *academicRepository) ListClasses(ctx context.Context) ([]academic.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.classes.all(), nil
}

func (repo *academicRepository) ListEnrollments(ctx context.Context, classID int) ([]academic.Enrollment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if _, err := repo.db.classes.get(classID); err != nil {
		return nil, err
	}
	return repo.db.classEnrollments(classID), nil
}

// classEnrollments must be called with db.mu held.
func (db *DB) classEnrollments(classID int) []academic.Enrollment {
	enrollments := make([]academic.Enrollment, 0)
	for _, e := range db.enrollments.all() {
		if e.ClassID != classID {
			continue
		}
		var name string
		if s, err := db.students.get(e.StudentID); err == nil {
			name = s.Name
		}
		enrollments = append(enrollments, academic.Enrollment{ID: e.ID, StudentID: e.StudentID, Name: name})
	}
	return enrollments
}

// ClassCouncil sums, per student and subject, the grades of the class's evaluations.
// Every row lists the subjects in the same order.
func (repo *academicRepository) ClassCouncil(ctx context.Context, classID int) ([]academic.CouncilRow, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if _, err := repo.db.classes.get(classID); err != nil {
		return nil, err
	}
	return repo.db.council(classID), nil
}

func (db *DB) council(classID int) []academic.CouncilRow {
	subjects := db.subjects.all()
	rows := make([]academic.CouncilRow, 0)
	for _, e := range db.classEnrollments(classID) {
		row := academic.CouncilRow{StudentName: e.Name, Grades: make([]academic.SubjectTotal, 0, len(subjects))}
		for _, s := range subjects {
			var total float64
			for _, ev := range db.evaluations.all() {
				if ev.ClassID != classID || !ev.SubjectID.Valid || ev.SubjectID.Int != s.ID {
					continue
				}
				total += db.grades[ev.ID][e.ID]
			}
			row.Grades = append(row.Grades, academic.SubjectTotal{Subject: s.Name, Total: total})
		}
		rows = append(rows, row)
	}
	return rows
}

func (repo *academicRepository) ListQueue(ctx context.Context) ([]academic.QueueEntry, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.queue.all(), nil
}

func (repo *academicRepository) Enqueue(ctx context.Context, in academic.QueueEntryInput) (academic.QueueEntry, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s, err := repo.db.students.get(in.StudentID)
	if err != nil {
		return academic.QueueEntry{}, core.NewValidationError(nil, core.FieldError{Field: "aluno_id", Error: "aluno não encontrado"})
	}
	entry := academic.QueueEntry{
		ID:          repo.db.queue.newID(),
		StudentID:   s.ID,
		StudentName: s.Name,
		RequestDate: repo.db.today(),
		Status:      academic.StatusAwaiting,
	}
	if in.SchoolID.Valid {
		school, err := repo.db.schools.get(in.SchoolID.Int)
		if err != nil {
			return academic.QueueEntry{}, core.NewValidationError(nil, core.FieldError{Field: "escola_id", Error: "escola não encontrada"})
		}
		entry.SchoolID = null.IntFrom(school.ID)
		entry.SchoolName = null.StringFrom(school.Name)
	}
	repo.db.queue.insert(entry.ID, entry)
	return entry, nil
}

func (repo *academicRepository) Dequeue(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.queue.remove(id)
}
