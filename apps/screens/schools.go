package screens

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
)

// Schools is the school registry page.
type Schools struct {
	list *query.List[[]pedagogical.School]
	crud *crud[pedagogical.SchoolInput, pedagogical.School]
}

func NewSchools(env Env, repo pedagogical.Repository) *Schools {
	s := &Schools{list: query.NewList(env.Client, KeySchools, repo.ListSchools)}
	f := form.New(env.Validate, env.Translator,
		func() pedagogical.SchoolInput { return pedagogical.SchoolInput{} },
		form.TextField("nome", func(v *pedagogical.SchoolInput) *string { return &v.Name }),
		form.OptionalTextField("inep", func(v *pedagogical.SchoolInput) *null.String { return &v.INEP }),
		form.OptionalTextField("endereco", func(v *pedagogical.SchoolInput) *null.String { return &v.Address }),
	)
	s.crud = newCrud(env, f, crudConfig[pedagogical.SchoolInput, pedagogical.School]{
		create:  repo.CreateSchool,
		update:  repo.UpdateSchool,
		remove:  repo.DeleteSchool,
		owner:   KeySchools,
		saved:   "Escola salva com sucesso!",
		removed: "Escola excluída!",
		prompt:  "Excluir?",
		reload:  []func(ctx context.Context) error{loader(s.list.Load)},
	})
	return s
}

func (s *Schools) Load(ctx context.Context) ([]pedagogical.School, error) { return s.list.Load(ctx) }
func (s *Schools) View() query.State[[]pedagogical.School]                { return s.list.View() }
func (s *Schools) Form() *form.Form[pedagogical.SchoolInput]              { return s.crud.form }

func (s *Schools) New() { s.crud.form.OpenNew() }

func (s *Schools) Edit(school pedagogical.School) { s.crud.form.OpenEdit(school.ID, school.AsInput()) }

func (s *Schools) Cancel() { s.crud.form.Close() }

func (s *Schools) Submit(ctx context.Context) (pedagogical.School, error) { return s.crud.submit(ctx) }

func (s *Schools) Delete(ctx context.Context, id int) error { return s.crud.delete(ctx, id) }

func (s *Schools) Pending() bool { return s.crud.pending() }
