package restrepo

import (
	"context"

	"github.com/trezcool/sge/core/people"
)

type peopleRepository struct {
	c *Client
}

var _ people.Repository = (*peopleRepository)(nil)

func NewPeopleRepository(c *Client) people.Repository {
	return &peopleRepository{c: c}
}

func (repo *peopleRepository) ListStudents(ctx context.Context) ([]people.Student, error) {
	var students []people.Student
	err := repo.c.get(ctx, "/people/alunos", &students)
	return students, err
}
