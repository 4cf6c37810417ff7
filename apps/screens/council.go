package screens

import (
	"context"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/query"
)

// Council is the read-only class council report.
type Council struct {
	classes *query.List[[]academic.Class]
	rows    *query.Dependent[int, []academic.CouncilRow]
}

func NewCouncil(env Env, repo academic.Repository) *Council {
	return &Council{
		classes: query.NewList(env.Client, KeyClasses, repo.ListClasses),
		rows:    query.NewDependent(env.Client, KeyCouncil, repo.ClassCouncil),
	}
}

func (c *Council) Classes(ctx context.Context) ([]academic.Class, error) { return c.classes.Load(ctx) }

func (c *Council) SelectClass(ctx context.Context, classID int) ([]academic.CouncilRow, error) {
	return c.rows.Select(ctx, classID)
}

func (c *Council) View() query.State[[]academic.CouncilRow] { return c.rows.View() }

// Subjects returns the report's columns.
func (c *Council) Subjects() []string {
	return academic.CouncilSubjects(c.rows.View().Data)
}
