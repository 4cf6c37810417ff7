package inmemdb

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/portal"
)

type portalRepository struct {
	db *DB
}

func NewPortalRepository(db *DB) portal.Repository {
	return &portalRepository{db: db}
}

// Login finds the student by CPF and issues a new token.
func (repo *portalRepository) Login(ctx context.Context, req portal.LoginRequest) (portal.LoginResult, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cpf := core.DigitsOnly(req.CPF)
	for _, s := range repo.db.students.all() {
		if s.CPF.Valid && core.DigitsOnly(s.CPF.String) == cpf {
			token := uuid.New().String()
			repo.db.tokens[token] = s.ID
			return portal.LoginResult{ID: s.ID, Name: s.Name, Token: token}, nil
		}
	}
	return portal.LoginResult{}, ErrNotFound
}

func (repo *portalRepository) Overview(ctx context.Context, studentID int) (portal.StudentOverview, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	s, err := repo.db.students.get(studentID)
	if err != nil {
		return portal.StudentOverview{}, err
	}
	overview := portal.StudentOverview{Name: s.Name, Grades: make([]portal.GradeLine, 0)}

	var a attendance
	for _, e := range repo.db.enrollments.all() {
		if e.StudentID != studentID {
			continue
		}
		if c, err := repo.db.classes.get(e.ClassID); err == nil {
			overview.Class = null.StringFrom(c.Label())
		}
		for _, ev := range repo.db.evaluations.all() {
			if ev.ClassID != e.ClassID {
				continue
			}
			v, ok := repo.db.grades[ev.ID][e.ID]
			if !ok {
				continue
			}
			subject := "Geral"
			if ev.SubjectName.Valid {
				subject = ev.SubjectName.String
			}
			overview.Grades = append(overview.Grades, portal.GradeLine{Subject: subject, Evaluation: ev.Name, Value: null.Float64From(v)})
		}
		if counts, ok := repo.db.attendance[e.ID]; ok {
			a.present += counts.present
			a.total += counts.total
		}
	}
	overview.Attendance = portal.Attendance{
		Present:    a.present,
		Total:      a.total,
		Percentage: math.Round(percentage(&a)*10) / 10,
	}
	return overview, nil
}

// TokenStudent returns the student a portal token was issued to.
func (db *DB) TokenStudent(token string) (int, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	id, ok := db.tokens[token]
	return id, ok
}
