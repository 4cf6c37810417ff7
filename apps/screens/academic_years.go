package screens

import (
	"context"
	"time"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
)

// AcademicYears lists and edits the academic years of the selected school.
type AcademicYears struct {
	schools *query.List[[]pedagogical.School]
	years   *query.Dependent[int, []pedagogical.AcademicYear]
	crud    *crud[pedagogical.AcademicYearInput, pedagogical.AcademicYear]
	logger  core.Logger
	NowFunc func() time.Time
}

func NewAcademicYears(env Env, repo pedagogical.Repository) *AcademicYears {
	a := &AcademicYears{
		schools: query.NewList(env.Client, KeySchools, repo.ListSchools),
		years:   query.NewDependent(env.Client, KeyAcademicYears, repo.ListAcademicYears),
		logger:  env.Logger,
		NowFunc: time.Now,
	}
	f := form.New(env.Validate, env.Translator,
		func() pedagogical.AcademicYearInput { return pedagogical.AcademicYearInput{Year: a.NowFunc().Year()} },
		form.IDField("escola_id", func(v *pedagogical.AcademicYearInput) *int { return &v.SchoolID }),
		form.IntField("ano", func(v *pedagogical.AcademicYearInput) *int { return &v.Year }),
		form.DateField("data_inicio", func(v *pedagogical.AcademicYearInput) *string { return &v.StartDate }),
		form.DateField("data_fim", func(v *pedagogical.AcademicYearInput) *string { return &v.EndDate }),
		form.BoolField("ativo", func(v *pedagogical.AcademicYearInput) *bool { return &v.Active }),
	)
	a.crud = newCrud(env, f, crudConfig[pedagogical.AcademicYearInput, pedagogical.AcademicYear]{
		create:  repo.CreateAcademicYear,
		update:  repo.UpdateAcademicYear,
		remove:  repo.DeleteAcademicYear,
		ownerOf: func(in pedagogical.AcademicYearInput) query.Key { return KeyAcademicYears(in.SchoolID) },
		current: a.years.Key,
		saved:   "Ano Letivo salvo!",
		removed: "Ano Letivo excluído!",
		prompt:  "Excluir?",
		reload:  []func(ctx context.Context) error{dependentLoader(a.years)},
	})
	// a form left open for the previous school must not be submitted to the new one
	a.years.OnReset(f.Close)
	return a
}

func (a *AcademicYears) Schools(ctx context.Context) ([]pedagogical.School, error) {
	return a.schools.Load(ctx)
}

// SelectSchool shows the years of schoolID; 0 clears the selection.
func (a *AcademicYears) SelectSchool(ctx context.Context, schoolID int) ([]pedagogical.AcademicYear, error) {
	years, err := a.years.Select(ctx, schoolID)
	if err == nil {
		if err := pedagogical.CheckSingleActive(years); err != nil {
			a.logger.Warn("inconsistent academic years", err)
		}
	}
	return years, err
}

func (a *AcademicYears) School() (int, bool) { return a.years.Parent() }

func (a *AcademicYears) View() query.State[[]pedagogical.AcademicYear] { return a.years.View() }

func (a *AcademicYears) Form() *form.Form[pedagogical.AcademicYearInput] { return a.crud.form }

// New opens a blank form bound to the selected school.
func (a *AcademicYears) New() error {
	schoolID, ok := a.years.Parent()
	if !ok {
		return ErrNoSelection
	}
	a.crud.form.OpenNew()
	return a.crud.form.Update(func(v *pedagogical.AcademicYearInput) { v.SchoolID = schoolID })
}

func (a *AcademicYears) Edit(year pedagogical.AcademicYear) {
	a.crud.form.OpenEdit(year.ID, year.AsInput())
}

func (a *AcademicYears) Cancel() { a.crud.form.Close() }

func (a *AcademicYears) Submit(ctx context.Context) (pedagogical.AcademicYear, error) {
	return a.crud.submit(ctx)
}

func (a *AcademicYears) Delete(ctx context.Context, id int) error { return a.crud.delete(ctx, id) }
