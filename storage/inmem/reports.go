package inmemdb

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/portal"
	"github.com/trezcool/sge/core/reports"
)

type reportsRepository struct {
	db *DB
}

func NewReportsRepository(db *DB) reports.Repository {
	return &reportsRepository{db: db}
}

func (repo *reportsRepository) DashboardStats(ctx context.Context) (reports.DashboardStats, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	stats := reports.DashboardStats{
		Counts: reports.Counts{
			Schools:  len(repo.db.schools.rows),
			Students: len(repo.db.students.rows),
			Teachers: repo.db.teachers,
			Classes:  len(repo.db.classes.rows),
		},
		AtRisk: make([]reports.AtRisk, 0),
	}

	graded := make(map[string]bool) // subjects with at least one evaluation, per class
	for _, ev := range repo.db.evaluations.all() {
		if ev.SubjectName.Valid {
			graded[fmt.Sprintf("%d/%s", ev.ClassID, ev.SubjectName.String)] = true
		}
	}
	for _, c := range repo.db.classes.all() {
		rows := repo.db.council(c.ID)
		for i, e := range repo.db.classEnrollments(c.ID) {
			if a, ok := repo.db.attendance[e.ID]; ok && a.total > 0 && percentage(a) < portal.MinimumAttendance {
				stats.AtRisk = append(stats.AtRisk, reports.AtRisk{Student: e.Name, Reason: "Frequência abaixo de 75%"})
				continue
			}
			for _, t := range rows[i].Grades {
				if graded[fmt.Sprintf("%d/%s", c.ID, t.Subject)] && t.Total < academic.PassingTotal {
					stats.AtRisk = append(stats.AtRisk, reports.AtRisk{Student: e.Name, Reason: "Nota baixa em " + t.Subject})
					break
				}
			}
		}
	}
	return stats, nil
}

func percentage(a *attendance) float64 {
	if a == nil || a.total == 0 {
		return 0
	}
	return float64(a.present) * 100 / float64(a.total)
}

// Educacenso renders the export as a semicolon separated CSV.
func (repo *reportsRepository) Educacenso(ctx context.Context, kind string) ([]byte, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	var records [][]string
	switch kind {
	case reports.ExportSchools:
		records = append(records, []string{"id", "nome", "inep", "endereco"})
		for _, s := range repo.db.schools.all() {
			records = append(records, []string{strconv.Itoa(s.ID), s.Name, s.INEP.String, s.Address.String})
		}
	case reports.ExportStudents:
		records = append(records, []string{"id", "nome", "cpf", "data_nascimento"})
		for _, s := range repo.db.students.all() {
			records = append(records, []string{strconv.Itoa(s.ID), s.Name, s.CPF.String, s.BirthDate})
		}
	default:
		return nil, ErrNotFound
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.WriteAll(records); err != nil {
		return nil, errors.Wrap(err, "writing csv")
	}
	return buf.Bytes(), nil
}

func (repo *reportsRepository) ReportCardURL(studentID int) string {
	return "/reports/boletim/" + strconv.Itoa(studentID)
}
