package reports

import (
	"context"
	"fmt"
)

// Educacenso exports.
const (
	ExportSchools  = "escolas"
	ExportStudents = "alunos"
)

type (
	Counts struct {
		Schools  int `json:"escolas"`
		Students int `json:"alunos"`
		Teachers int `json:"professores"`
		Classes  int `json:"turmas"`
	}

	AtRisk struct {
		Student string `json:"aluno"`
		Reason  string `json:"motivo"`
	}

	DashboardStats struct {
		Counts Counts   `json:"counts"`
		AtRisk []AtRisk `json:"at_risk"`
	}
)

// ExportFilename is the file name an Educacenso export is saved as.
func ExportFilename(kind string) string {
	return fmt.Sprintf("%s_educacenso.csv", kind)
}

func ValidExport(kind string) bool {
	return kind == ExportSchools || kind == ExportStudents
}

// Repository is the backend's reports area.
type Repository interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	Educacenso(ctx context.Context, kind string) ([]byte, error)
	// ReportCardURL is the boletim address of a student; it is linked to, never fetched.
	ReportCardURL(studentID int) string
}
