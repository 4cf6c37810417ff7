package portal

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core"
)

// Thresholds used to color the student's home page.
const (
	PassingGrade      = 60.0
	MinimumAttendance = 75.0
)

type (
	LoginRequest struct {
		CPF string `json:"cpf" validate:"required,cpf"`
	}

	LoginResult struct {
		ID    int    `json:"id" validate:"gt=0"`
		Name  string `json:"nome" validate:"required"`
		Token string `json:"token" validate:"required"`
	}

	GradeLine struct {
		Subject    string       `json:"disciplina"`
		Evaluation string       `json:"avaliacao"`
		Value      null.Float64 `json:"valor"`
	}

	Attendance struct {
		Present    int     `json:"presente"`
		Total      int     `json:"total"`
		Percentage float64 `json:"porcentagem"`
	}

	StudentOverview struct {
		Name       string      `json:"nome" validate:"required"`
		Class      null.String `json:"turma"`
		Grades     []GradeLine `json:"notas"`
		Attendance Attendance  `json:"frequencia"`
	}
)

// Clean keeps only the CPF digits, e.g. "123.456.789-09" -> "12345678909".
func (lr *LoginRequest) Clean() {
	lr.CPF = core.DigitsOnly(lr.CPF)
}

func (g GradeLine) Passing() bool {
	return g.Value.Valid && g.Value.Float64 >= PassingGrade
}

func (a Attendance) Sufficient() bool {
	return a.Percentage >= MinimumAttendance
}

// ClassName is the class shown on the home page, or "Sem turma".
func (o StudentOverview) ClassName() string {
	if o.Class.Valid && o.Class.String != "" {
		return o.Class.String
	}
	return "Sem turma"
}

// Repository is the backend's student portal.
type Repository interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Overview(ctx context.Context, studentID int) (StudentOverview, error)
}
