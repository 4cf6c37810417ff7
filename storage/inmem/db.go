// Package inmemdb keeps the backend data in memory. It backs the development
// API and the screen tests.
package inmemdb

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/sge/core/academic"
	"github.com/trezcool/sge/core/diary"
	"github.com/trezcool/sge/core/pedagogical"
	"github.com/trezcool/sge/core/people"
)

var ErrNotFound = errors.New("not found")

type (
	table[T any] struct {
		rows   map[int]*T
		nextID int
	}

	enrollment struct {
		ID        int
		ClassID   int
		StudentID int
	}

	evaluation struct {
		diary.Evaluation
		ClassID int
	}

	attendance struct {
		present int
		total   int
	}

	DB struct {
		mu sync.RWMutex

		schools     *table[pedagogical.School]
		years       *table[pedagogical.AcademicYear]
		subjects    *table[pedagogical.Subject]
		zoning      *table[pedagogical.ZoningRule]
		classes     *table[academic.Class]
		students    *table[people.Student]
		enrollments *table[enrollment]
		queue       *table[academic.QueueEntry]
		evaluations *table[evaluation]
		plans       *table[diary.LessonPlan]

		grades     map[int]map[int]float64 // evaluation -> enrollment -> value
		attendance map[int]*attendance     // enrollment -> counts
		tokens     map[string]int          // portal token -> student
		teachers   int

		NowFunc func() time.Time // mockable
	}
)

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]*T), nextID: 1}
}

func (t *table[T]) insert(id int, row T) {
	t.rows[id] = &row
	if id >= t.nextID {
		t.nextID = id + 1
	}
}

func (t *table[T]) newID() int {
	id := t.nextID
	t.nextID++
	return id
}

func (t *table[T]) get(id int) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return row, nil
}

// all returns copies of the rows ordered by id.
func (t *table[T]) all() []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}

func (t *table[T]) remove(id int) error {
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// Open returns an empty database.
func Open() *DB {
	return &DB{
		schools:     newTable[pedagogical.School](),
		years:       newTable[pedagogical.AcademicYear](),
		subjects:    newTable[pedagogical.Subject](),
		zoning:      newTable[pedagogical.ZoningRule](),
		classes:     newTable[academic.Class](),
		students:    newTable[people.Student](),
		enrollments: newTable[enrollment](),
		queue:       newTable[academic.QueueEntry](),
		evaluations: newTable[evaluation](),
		plans:       newTable[diary.LessonPlan](),
		grades:      make(map[int]map[int]float64),
		attendance:  make(map[int]*attendance),
		tokens:      make(map[string]int),
		NowFunc:     time.Now,
	}
}

func (db *DB) today() string {
	return db.NowFunc().Format("2006-01-02")
}

// AddClass inserts a class. Classes are managed outside this application.
func (db *DB) AddClass(c academic.Class) academic.Class {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == 0 {
		c.ID = db.classes.newID()
	}
	db.classes.insert(c.ID, c)
	return c
}

func (db *DB) AddStudent(s people.Student) people.Student {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.ID == 0 {
		s.ID = db.students.newID()
	}
	db.students.insert(s.ID, s)
	return s
}

// Enroll puts a student in a class under the given enrollment id (0 picks one).
func (db *DB) Enroll(id, classID, studentID int) (academic.Enrollment, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.classes.get(classID); err != nil {
		return academic.Enrollment{}, errors.Wrap(err, "class")
	}
	s, err := db.students.get(studentID)
	if err != nil {
		return academic.Enrollment{}, errors.Wrap(err, "student")
	}
	if id == 0 {
		id = db.enrollments.newID()
	}
	db.enrollments.insert(id, enrollment{ID: id, ClassID: classID, StudentID: studentID})
	return academic.Enrollment{ID: id, StudentID: studentID, Name: s.Name}, nil
}

func (db *DB) SetTeachers(n int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.teachers = n
}
