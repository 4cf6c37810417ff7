package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

type planInput struct {
	ClassID  int         `json:"turma_id" validate:"gt=0"`
	Date     string      `json:"data" validate:"required,isodate"`
	Content  string      `json:"conteudo" validate:"required,min=5"`
	Homework null.String `json:"tarefa_casa"`
	School   null.Int    `json:"escola_id"`
	Max      float64     `json:"valor_maximo"`
	Active   bool        `json:"ativo"`
}

func (p *planInput) Clean() {
	p.Content = core.CleanString(p.Content)
}

func newPlanForm() *Form[planInput] {
	validate, translator := core.NewValidator()
	return New(validate, translator,
		func() planInput { return planInput{Date: "2024-03-01"} },
		IDField("turma_id", func(v *planInput) *int { return &v.ClassID }),
		DateField("data", func(v *planInput) *string { return &v.Date }),
		TextField("conteudo", func(v *planInput) *string { return &v.Content }),
		OptionalTextField("tarefa_casa", func(v *planInput) *null.String { return &v.Homework }),
		OptionalIDField("escola_id", func(v *planInput) *null.Int { return &v.School }),
		FloatField("valor_maximo", func(v *planInput) *float64 { return &v.Max }),
		BoolField("ativo", func(v *planInput) *bool { return &v.Active }),
	).WithMessages(map[string]string{"conteudo.min": "Conteúdo muito curto"})
}

func TestForm_transitions(t *testing.T) {
	f := newPlanForm()
	assert.Equal(t, State{Mode: ModeClosed}, f.State())
	assert.ErrorIs(t, f.Set("conteudo", "x"), ErrClosed)

	f.OpenNew()
	assert.Equal(t, ModeCreating, f.State().Mode)
	require.NoError(t, f.Set("conteudo", "Frações"))
	assert.Equal(t, "Frações", f.Values().Content)

	// retargeting resets before populating
	record := planInput{ClassID: 3, Date: "2024-04-02", Content: "Geometria plana"}
	f.OpenEdit(9, record)
	assert.Equal(t, State{Mode: ModeEditing, ID: 9}, f.State())
	assert.Equal(t, record, f.Values())

	require.NoError(t, f.Set("conteudo", "editado"))
	f.OpenEdit(9, record)
	first := f.Values()
	f.OpenEdit(9, record)
	assert.Equal(t, first, f.Values())

	f.Close()
	assert.False(t, f.IsOpen())
	assert.Equal(t, planInput{Date: "2024-03-01"}, f.Values())
}

func TestForm_Set(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		raw     string
		wantErr bool
		check   func(t *testing.T, v planInput)
	}{
		{name: "unknown field", field: "lol", raw: "1", wantErr: true},
		{name: "id", field: "turma_id", raw: "4", check: func(t *testing.T, v planInput) { assert.Equal(t, 4, v.ClassID) }},
		{name: "bad id", field: "turma_id", raw: "abc", wantErr: true},
		{name: "blank optional id", field: "escola_id", raw: " ", check: func(t *testing.T, v planInput) { assert.False(t, v.School.Valid) }},
		{name: "optional id", field: "escola_id", raw: "2", check: func(t *testing.T, v planInput) { assert.Equal(t, null.IntFrom(2), v.School) }},
		{name: "bad date", field: "data", raw: "01/03/2024", wantErr: true},
		{name: "comma float", field: "valor_maximo", raw: "7,5", check: func(t *testing.T, v planInput) { assert.Equal(t, 7.5, v.Max) }},
		{name: "bool", field: "ativo", raw: "sim", check: func(t *testing.T, v planInput) { assert.True(t, v.Active) }},
		{name: "bad bool", field: "ativo", raw: "talvez", wantErr: true},
		{name: "blank optional text", field: "tarefa_casa", raw: "", check: func(t *testing.T, v planInput) { assert.False(t, v.Homework.Valid) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPlanForm()
			f.OpenNew()
			err := f.Set(tt.field, tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, f.Values())
		})
	}
}

func TestForm_Validate(t *testing.T) {
	f := newPlanForm()
	_, err := f.Validate()
	assert.ErrorIs(t, err, ErrClosed)

	f.OpenNew()
	require.NoError(t, f.Set("conteudo", "  abc "))
	_, err = f.Validate()
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
	errs := f.Errors()
	assert.Equal(t, "Conteúdo muito curto", errs["conteudo"])
	assert.Contains(t, errs, "turma_id")

	require.NoError(t, f.Set("turma_id", "2"))
	require.NoError(t, f.Set("conteudo", "Frações equivalentes"))
	v, err := f.Validate()
	require.NoError(t, err)
	assert.Empty(t, f.Errors())
	assert.Equal(t, 2, v.ClassID)

	// parse failures block validation
	assert.Error(t, f.Set("data", "ontem"))
	_, err = f.Validate()
	require.Error(t, err)
	assert.Contains(t, f.Errors(), "data")
	require.NoError(t, f.Set("data", "2024-05-05"))
	_, err = f.Validate()
	assert.NoError(t, err)
}
