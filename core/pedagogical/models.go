package pedagogical

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

type (
	School struct {
		ID      int         `json:"id" validate:"gt=0"`
		Name    string      `json:"nome" validate:"required"`
		INEP    null.String `json:"inep"`
		Address null.String `json:"endereco"`
	}

	// SchoolInput contains information needed to create or update a School.
	SchoolInput struct {
		Name    string      `json:"nome" validate:"required,min=3"`
		INEP    null.String `json:"inep"`
		Address null.String `json:"endereco"`
	}

	AcademicYear struct {
		ID        int    `json:"id" validate:"gt=0"`
		SchoolID  int    `json:"escola_id" validate:"gt=0"`
		Year      int    `json:"ano"`
		StartDate string `json:"data_inicio"`
		EndDate   string `json:"data_fim"`
		Active    bool   `json:"ativo"`
	}

	AcademicYearInput struct {
		SchoolID  int    `json:"escola_id" validate:"gt=0"`
		Year      int    `json:"ano" validate:"gte=1900,lte=2100"`
		StartDate string `json:"data_inicio" validate:"required,isodate"`
		EndDate   string `json:"data_fim" validate:"required,isodate"`
		Active    bool   `json:"ativo"`
	}

	Subject struct {
		ID   int    `json:"id" validate:"gt=0"`
		Name string `json:"nome" validate:"required"`
		Code string `json:"codigo"`
	}

	SubjectInput struct {
		Name string `json:"nome" validate:"required,min=2"`
		Code string `json:"codigo" validate:"required,min=2"`
	}

	ZoningRule struct {
		ID           int    `json:"id" validate:"gt=0"`
		Neighborhood string `json:"bairro" validate:"required"`
		SchoolID     int    `json:"escola_id" validate:"gt=0"`
		SchoolName   string `json:"escola_nome"`
	}

	ZoningRuleInput struct {
		Neighborhood string `json:"bairro" validate:"required,min=2"`
		SchoolID     int    `json:"escola_id" validate:"gt=0"`
	}
)

func (si *SchoolInput) Clean() {
	si.Name = core.CleanString(si.Name)
	si.INEP = cleanNullString(si.INEP)
	si.Address = cleanNullString(si.Address)
}

func (ai *AcademicYearInput) Clean() {
	ai.StartDate = core.CleanString(ai.StartDate)
	ai.EndDate = core.CleanString(ai.EndDate)
}

func (si *SubjectInput) Clean() {
	si.Name = core.CleanString(si.Name)
	si.Code = core.CleanString(si.Code)
}

func (zi *ZoningRuleInput) Clean() {
	zi.Neighborhood = core.CleanString(zi.Neighborhood)
}

// AsInput returns the editable fields of the School.
func (s School) AsInput() SchoolInput {
	return SchoolInput{Name: s.Name, INEP: s.INEP, Address: s.Address}
}

func (y AcademicYear) AsInput() AcademicYearInput {
	return AcademicYearInput{
		SchoolID:  y.SchoolID,
		Year:      y.Year,
		StartDate: y.StartDate,
		EndDate:   y.EndDate,
		Active:    y.Active,
	}
}

func (s Subject) AsInput() SubjectInput {
	return SubjectInput{Name: s.Name, Code: s.Code}
}

// ActiveYears returns the years flagged active.
// At most one active year per school is expected; the backend does not enforce it.
func ActiveYears(years []AcademicYear) []AcademicYear {
	var active []AcademicYear
	for _, y := range years {
		if y.Active {
			active = append(active, y)
		}
	}
	return active
}

// CheckSingleActive reports a school with more than one active academic year.
func CheckSingleActive(years []AcademicYear) error {
	perSchool := make(map[int]int)
	for _, y := range ActiveYears(years) {
		perSchool[y.SchoolID]++
		if perSchool[y.SchoolID] > 1 {
			return fmt.Errorf("school %d has more than one active academic year", y.SchoolID)
		}
	}
	return nil
}

func cleanNullString(s null.String) null.String {
	if !s.Valid {
		return s
	}
	v := core.CleanString(s.String)
	return null.NewString(v, v != "")
}

// Repository is the backend's pedagogical area.
type Repository interface {
	ListSchools(ctx context.Context) ([]School, error)
	CreateSchool(ctx context.Context, in SchoolInput) (School, error)
	UpdateSchool(ctx context.Context, id int, in SchoolInput) (School, error)
	DeleteSchool(ctx context.Context, id int) error

	ListAcademicYears(ctx context.Context, schoolID int) ([]AcademicYear, error)
	CreateAcademicYear(ctx context.Context, in AcademicYearInput) (AcademicYear, error)
	UpdateAcademicYear(ctx context.Context, id int, in AcademicYearInput) (AcademicYear, error)
	DeleteAcademicYear(ctx context.Context, id int) error

	ListSubjects(ctx context.Context) ([]Subject, error)
	CreateSubject(ctx context.Context, in SubjectInput) (Subject, error)
	UpdateSubject(ctx context.Context, id int, in SubjectInput) (Subject, error)
	DeleteSubject(ctx context.Context, id int) error

	ListZoningRules(ctx context.Context) ([]ZoningRule, error)
	CreateZoningRule(ctx context.Context, in ZoningRuleInput) (ZoningRule, error)
	DeleteZoningRule(ctx context.Context, id int) error
}
