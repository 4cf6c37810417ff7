package restrepo

import (
	"context"

	"github.com/trezcool/sge/core/pedagogical"
)

type pedagogicalRepository struct {
	c *Client
}

var _ pedagogical.Repository = (*pedagogicalRepository)(nil)

func NewPedagogicalRepository(c *Client) pedagogical.Repository {
	return &pedagogicalRepository{c: c}
}

func (repo *pedagogicalRepository) ListSchools(ctx context.Context) ([]pedagogical.School, error) {
	var schools []pedagogical.School
	err := repo.c.get(ctx, "/pedagogical/escolas", &schools)
	return schools, err
}

func (repo *pedagogicalRepository) CreateSchool(ctx context.Context, in pedagogical.SchoolInput) (pedagogical.School, error) {
	var school pedagogical.School
	err := repo.c.post(ctx, "/pedagogical/escolas", in, &school)
	return school, err
}

func (repo *pedagogicalRepository) UpdateSchool(ctx context.Context, id int, in pedagogical.SchoolInput) (pedagogical.School, error) {
	var school pedagogical.School
	err := repo.c.put(ctx, "/pedagogical/escolas/"+itoa(id), in, &school)
	return school, err
}

func (repo *pedagogicalRepository) DeleteSchool(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/pedagogical/escolas/"+itoa(id))
}

func (repo *pedagogicalRepository) ListAcademicYears(ctx context.Context, schoolID int) ([]pedagogical.AcademicYear, error) {
	var years []pedagogical.AcademicYear
	err := repo.c.get(ctx, "/pedagogical/escolas/"+itoa(schoolID)+"/anos-letivos", &years)
	return years, err
}

func (repo *pedagogicalRepository) CreateAcademicYear(ctx context.Context, in pedagogical.AcademicYearInput) (pedagogical.AcademicYear, error) {
	var year pedagogical.AcademicYear
	err := repo.c.post(ctx, "/pedagogical/anos-letivos", in, &year)
	return year, err
}

func (repo *pedagogicalRepository) UpdateAcademicYear(ctx context.Context, id int, in pedagogical.AcademicYearInput) (pedagogical.AcademicYear, error) {
	var year pedagogical.AcademicYear
	err := repo.c.put(ctx, "/pedagogical/anos-letivos/"+itoa(id), in, &year)
	return year, err
}

func (repo *pedagogicalRepository) DeleteAcademicYear(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/pedagogical/anos-letivos/"+itoa(id))
}

func (repo *pedagogicalRepository) ListSubjects(ctx context.Context) ([]pedagogical.Subject, error) {
	var subjects []pedagogical.Subject
	err := repo.c.get(ctx, "/pedagogical/disciplinas", &subjects)
	return subjects, err
}

func (repo *pedagogicalRepository) CreateSubject(ctx context.Context, in pedagogical.SubjectInput) (pedagogical.Subject, error) {
	var subject pedagogical.Subject
	err := repo.c.post(ctx, "/pedagogical/disciplinas", in, &subject)
	return subject, err
}

func (repo *pedagogicalRepository) UpdateSubject(ctx context.Context, id int, in pedagogical.SubjectInput) (pedagogical.Subject, error) {
	var subject pedagogical.Subject
	err := repo.c.put(ctx, "/pedagogical/disciplinas/"+itoa(id), in, &subject)
	return subject, err
}

func (repo *pedagogicalRepository) DeleteSubject(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/pedagogical/disciplinas/"+itoa(id))
}

func (repo *pedagogicalRepository) ListZoningRules(ctx context.Context) ([]pedagogical.ZoningRule, error) {
	var rules []pedagogical.ZoningRule
	err := repo.c.get(ctx, "/pedagogical/zoneamento", &rules)
	return rules, err
}

func (repo *pedagogicalRepository) CreateZoningRule(ctx context.Context, in pedagogical.ZoningRuleInput) (pedagogical.ZoningRule, error) {
	var rule pedagogical.ZoningRule
	err := repo.c.post(ctx, "/pedagogical/zoneamento", in, &rule)
	return rule, err
}

func (repo *pedagogicalRepository) DeleteZoningRule(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/pedagogical/zoneamento/"+itoa(id))
}
