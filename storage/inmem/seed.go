package inmemdb

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/people"
)

// Seed fills db with a small school network.
func Seed(db *DB) *DB {
	db.mu.Lock()
	db.schools.insert(1, pedagogical.School{ID: 1, Name: "Escola Municipal Monteiro Lobato", INEP: null.StringFrom("35000001"), Address: null.StringFrom("Rua das Flores, 100")})
	db.schools.insert(2, pedagogical.School{ID: 2, Name: "EMEF Cecília Meireles"})
	db.years.insert(1, pedagogical.AcademicYear{ID: 1, SchoolID: 1, Year: 2024, StartDate: "2024-02-05", EndDate: "2024-12-13", Active: true})
	db.subjects.insert(1, pedagogical.Subject{ID: 1, Name: "Matemática", Code: "MAT"})
	db.subjects.insert(2, pedagogical.Subject{ID: 2, Name: "Português", Code: "POR"})
	db.zoning.insert(1, pedagogical.ZoningRule{ID: 1, Neighborhood: "Centro", SchoolID: 1, SchoolName: "Escola Municipal Monteiro Lobato"})
	db.teachers = 8
	db.mu.Unlock()

	db.AddClass(academic.Class{ID: 1, Name: "5A", Year: 2024, Shift: "Manhã"})
	db.AddClass(academic.Class{ID: 2, Name: "6B", Year: 2024, Shift: "Tarde"})

	db.AddStudent(people.Student{ID: 1, Name: "Ana Souza", CPF: null.StringFrom("12345678909"), BirthDate: "2013-04-10"})
	db.AddStudent(people.Student{ID: 2, Name: "Bruno Lima", CPF: null.StringFrom("98765432100"), BirthDate: "2013-08-22"})
	db.AddStudent(people.Student{ID: 3, Name: "Carla Dias", BirthDate: "2013-01-30"})
	db.AddStudent(people.Student{ID: 4, Name: "Daniel Rocha", BirthDate: "2012-11-05"})

	_, _ = db.Enroll(11, 1, 1)
	_, _ = db.Enroll(12, 1, 2)
	_, _ = db.Enroll(13, 1, 3)
	_, _ = db.Enroll(14, 2, 4)

	db.mu.Lock()
	db.queue.insert(1, academic.QueueEntry{ID: 1, StudentID: 4, StudentName: "Daniel Rocha", RequestDate: "2024-01-15", Status: academic.StatusAwaiting})
	db.mu.Unlock()
	return db
}
