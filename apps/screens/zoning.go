package screens

import (
	"context"

	"github.com/trezcool/sge/core/form"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/query"
)

// Zoning maps neighborhoods to the school that serves them. Rules are created or removed, never edited.
type Zoning struct {
	list    *query.List[[]pedagogical.ZoningRule]
	schools *query.List[[]pedagogical.School]
	crud    *crud[pedagogical.ZoningRuleInput, pedagogical.ZoningRule]
}

func NewZoning(env Env, repo pedagogical.Repository) *Zoning {
	z := &Zoning{
		list:    query.NewList(env.Client, KeyZoning, repo.ListZoningRules),
		schools: query.NewList(env.Client, KeySchools, repo.ListSchools),
	}
	f := form.New(env.Validate, env.Translator,
		func() pedagogical.ZoningRuleInput { return pedagogical.ZoningRuleInput{} },
		form.TextField("bairro", func(v *pedagogical.ZoningRuleInput) *string { return &v.Neighborhood }),
		form.IDField("escola_id", func(v *pedagogical.ZoningRuleInput) *int { return &v.SchoolID }),
	)
	z.crud = newCrud(env, f, crudConfig[pedagogical.ZoningRuleInput, pedagogical.ZoningRule]{
		create:  repo.CreateZoningRule,
		remove:  repo.DeleteZoningRule,
		owner:   KeyZoning,
		saved:   "Zoneamento salvo!",
		removed: "Zoneamento removido!",
		prompt:  "Excluir?",
		reload:  []func(ctx context.Context) error{loader(z.list.Load)},
	})
	return z
}

func (z *Zoning) Load(ctx context.Context) ([]pedagogical.ZoningRule, error) { return z.list.Load(ctx) }
func (z *Zoning) View() query.State[[]pedagogical.ZoningRule]                { return z.list.View() }
func (z *Zoning) Form() *form.Form[pedagogical.ZoningRuleInput]              { return z.crud.form }

// Schools loads the options of the school select.
func (z *Zoning) Schools(ctx context.Context) ([]pedagogical.School, error) {
	return z.schools.Load(ctx)
}

func (z *Zoning) New()    { z.crud.form.OpenNew() }
func (z *Zoning) Cancel() { z.crud.form.Close() }

func (z *Zoning) Submit(ctx context.Context) (pedagogical.ZoningRule, error) {
	return z.crud.submit(ctx)
}
func (z *Zoning) Delete(ctx context.Context, id int) error { return z.crud.delete(ctx, id) }
