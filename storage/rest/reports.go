package restrepo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/reports"
)

type reportsRepository struct {
	c *Client
}

var _ reports.Repository = (*reportsRepository)(nil)

func NewReportsRepository(c *Client) reports.Repository {
	return &reportsRepository{c: c}
}

func (repo *reportsRepository) DashboardStats(ctx context.Context) (reports.DashboardStats, error) {
	var stats reports.DashboardStats
	err := repo.c.get(ctx, "/reports/dashboard/stats", &stats)
	return stats, err
}

func (repo *reportsRepository) Educacenso(ctx context.Context, kind string) ([]byte, error) {
	if !reports.ValidExport(kind) {
		return nil, errors.Errorf("unknown educacenso export %q", kind)
	}
	return repo.c.raw(ctx, "/reports/educacenso/"+kind, "text/csv")
}

func (repo *reportsRepository) ReportCardURL(studentID int) string {
	return repo.c.URL("/reports/boletim/" + itoa(studentID))
}
