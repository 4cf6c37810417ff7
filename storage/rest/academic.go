package restrepo

import (
	"context"

	"github.com/trezcool/sge/core/academic"
)

type academicRepository struct {
	c *Client
}

var _ academic.Repository = (*academicRepository)(nil)

func NewAcademicRepository(c *Client) academic.Repository {
	return &academicRepository{c: c}
}

func (repo *academicRepository) ListClasses(ctx context.Context) ([]academic.Class, error) {
	var classes []academic.Class
	err := repo.c.get(ctx, "/academic/turmas", &classes)
	return classes, err
}

func (repo *academicRepository) ListEnrollments(ctx context.Context, classID int) ([]academic.Enrollment, error) {
	var enrollments []academic.Enrollment
	err := repo.c.get(ctx, "/academic/turmas/"+itoa(classID)+"/alunos", &enrollments)
	return enrollments, err
}

func (repo *academicRepository) ClassCouncil(ctx context.Context, classID int) ([]academic.CouncilRow, error) {
	var rows []academic.CouncilRow
	err := repo.c.get(ctx, "/academic/turmas/"+itoa(classID)+"/conselho", &rows)
	return rows, err
}

func (repo *academicRepository) ListQueue(ctx context.Context) ([]academic.QueueEntry, error) {
	var entries []academic.QueueEntry
	err := repo.c.get(ctx, "/academic/fila", &entries)
	return entries, err
}

func (repo *academicRepository) Enqueue(ctx context.Context, in academic.QueueEntryInput) (academic.QueueEntry, error) {
	var entry academic.QueueEntry
	err := repo.c.post(ctx, "/academic/fila", in, &entry)
	return entry, err
}

func (repo *academicRepository) Dequeue(ctx context.Context, id int) error {
	return repo.c.remove(ctx, "/academic/fila/"+itoa(id))
}
