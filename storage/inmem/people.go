package inmemdb

import (
	"context"

	"github.com/trezcool/sge/core/people"
)

type peopleRepository struct {
	db *DB
}

func NewPeopleRepository(db *DB) people.Repository {
	return &peopleRepository{db: db}
}

func (repo *peopleRepository) ListStudents(ctx context.Context) ([]people.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.students.all(), nil
}
