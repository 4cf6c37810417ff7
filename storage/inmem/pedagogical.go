package inmemdb

import (
	"context"

	"github.com/trezcool/sge/core"
	"github.com/trezcool/sge/core/pedagogical"
)

var errSchoolInUse = core.FieldError{Field: "escola", Error: "escola possui registros vinculados"}

type pedagogicalRepository struct {
	db *DB
}

func NewPedagogicalRepository(db *DB) pedagogical.Repository {
	return &pedagogicalRepository{db: db}
}

func (repo *pedagogicalRepository) ListSchools(ctx context.Context) ([]pedagogical.School, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.schools.all(), nil
}

func (repo *pedagogicalRepository) CreateSchool(ctx context.Context, in pedagogical.SchoolInput) (pedagogical.School, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s := pedagogical.School{ID: repo.db.schools.newID(), Name: in.Name, INEP: in.INEP, Address: in.Address}
	repo.db.schools.insert(s.ID, s)
	return s, nil
}

func (repo *pedagogicalRepository) UpdateSchool(ctx context.Context, id int, in pedagogical.SchoolInput) (pedagogical.School, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s, err := repo.db.schools.get(id)
	if err != nil {
		return pedagogical.School{}, err
	}
	s.Name, s.INEP, s.Address = in.Name, in.INEP, in.Address
	for _, z := range repo.db.zoning.rows {
		if z.SchoolID == id {
			z.SchoolName = s.Name
		}
	}
	return *s, nil
}

func (repo *pedagogicalRepository) DeleteSchool(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, err := repo.db.schools.get(id); err != nil {
		return err
	}
	for _, y := range repo.db.years.rows {
		if y.SchoolID == id {
			return core.NewValidationError(nil, errSchoolInUse)
		}
	}
	for _, z := range repo.db.zoning.rows {
		if z.SchoolID == id {
			return core.NewValidationError(nil, errSchoolInUse)
		}
	}
	return repo.db.schools.remove(id)
}

func (repo *pedagogicalRepository) ListAcademicYears(ctx context.Context, schoolID int) ([]pedagogical.AcademicYear, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if _, err := repo.db.schools.get(schoolID); err != nil {
		return nil, err
	}
	years := make([]pedagogical.AcademicYear, 0)
	for _, y := range repo.db.years.all() {
		if y.SchoolID == schoolID {
			years = append(years, y)
		}
	}
	return years, nil
}

func (repo *pedagogicalRepository) checkSchool(field string, id int) error {
	if _, err := repo.db.schools.get(id); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: field, Error: "escola não encontrada"})
	}
	return nil
}

func (repo *pedagogicalRepository) CreateAcademicYear(ctx context.Context, in pedagogical.AcademicYearInput) (pedagogical.AcademicYear, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if err := repo.checkSchool("escola_id", in.SchoolID); err != nil {
		return pedagogical.AcademicYear{}, err
	}
	y := pedagogical.AcademicYear{
		ID:        repo.db.years.newID(),
		SchoolID:  in.SchoolID,
		Year:      in.Year,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Active:    in.Active,
	}
	repo.db.years.insert(y.ID, y)
	return y, nil
}

func (repo *pedagogicalRepository) UpdateAcademicYear(ctx context.Context, id int, in pedagogical.AcademicYearInput) (pedagogical.AcademicYear, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	y, err := repo.db.years.get(id)
	if err != nil {
		return pedagogical.AcademicYear{}, err
	}
	if err := repo.checkSchool("escola_id", in.SchoolID); err != nil {
		return pedagogical.AcademicYear{}, err
	}
	y.SchoolID, y.Year, y.StartDate, y.EndDate, y.Active = in.SchoolID, in.Year, in.StartDate, in.EndDate, in.Active
	return *y, nil
}

func (repo *pedagogicalRepository) DeleteAcademicYear(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.years.remove(id)
}

func (repo *pedagogicalRepository) ListSubjects(ctx context.Context) ([]pedagogical.Subject, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.subjects.all(), nil
}

func (repo *pedagogicalRepository) CreateSubject(ctx context.Context, in pedagogical.SubjectInput) (pedagogical.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s := pedagogical.Subject{ID: repo.db.subjects.newID(), Name: in.Name, Code: in.Code}
	repo.db.subjects.insert(s.ID, s)
	return s, nil
}

func (repo *pedagogicalRepository) UpdateSubject(ctx context.Context, id int, in pedagogical.SubjectInput) (pedagogical.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s, err := repo.db.subjects.get(id)
	if err != nil {
		return pedagogical.Subject{}, err
	}
	s.Name, s.Code = in.Name, in.Code
	return *s, nil
}

func (repo *pedagogicalRepository) DeleteSubject(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.subjects.remove(id)
}

func (repo *pedagogicalRepository) ListZoningRules(ctx context.Context) ([]pedagogical.ZoningRule, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.db.zoning.all(), nil
}

func (repo *pedagogicalRepository) CreateZoningRule(ctx context.Context, in pedagogical.ZoningRuleInput) (pedagogical.ZoningRule, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	s, err := repo.db.schools.get(in.SchoolID)
	if err != nil {
		return pedagogical.ZoningRule{}, core.NewValidationError(nil, core.FieldError{Field: "escola_id", Error: "escola não encontrada"})
	}
	z := pedagogical.ZoningRule{ID: repo.db.zoning.newID(), Neighborhood: in.Neighborhood, SchoolID: s.ID, SchoolName: s.Name}
	repo.db.zoning.insert(z.ID, z)
	return z, nil
}

func (repo *pedagogicalRepository) DeleteZoningRule(ctx context.Context, id int) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()
	return repo.db.zoning.remove(id)
}
