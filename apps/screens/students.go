package screens

import (
	"context"

	"github.com/trezcool/sge/core/people"
	"github.com/trezcool/sge/core/query"
	"github.com/trezcool/sge/core/reports"
)

type Students struct {
	list    *query.List[[]people.Student]
	reports reports.Repository
}

func NewStudents(env Env, repo people.Repository, reportsRepo reports.Repository) *Students {
	return &Students{
		list:    query.NewList(env.Client, KeyStudents, repo.ListStudents),
		reports: reportsRepo,
	}
}

func (s *Students) Load(ctx context.Context) ([]people.Student, error) { return s.list.Load(ctx) }

func (s *Students) View() query.State[[]people.Student] { return s.list.View() }

// Search filters the loaded students by name.
func (s *Students) Search(ctx context.Context, term string) ([]people.Student, error) {
	students, err := s.list.Load(ctx)
	if err != nil {
		return nil, err
	}
	return people.Search(students, term), nil
}

// ReportCardURL is the link to the student's report card. It is never fetched here.
func (s *Students) ReportCardURL(studentID int) string {
	return s.reports.ReportCardURL(studentID)
}
