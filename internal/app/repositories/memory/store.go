// Package memory provides an in-memory transactional Store with the same
// constraint behaviour as the PostgreSQL schema. Units of work run against a
// cloned state that replaces the live state only when they succeed.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
	"github.com/AriaGT/sistema-libreria/internal/pkg/dberrors"
)

type state struct {
	grades      map[int64]models.Grade
	sections    map[int64]models.Section
	courses     map[int64]models.Course
	books       map[int64]models.Book
	users       map[int64]models.User
	enrollments map[int64]models.Enrollment
	seq         map[string]int64
}

func newState() state {
	return state{
		grades:      map[int64]models.Grade{},
		sections:    map[int64]models.Section{},
		courses:     map[int64]models.Course{},
		books:       map[int64]models.Book{},
		users:       map[int64]models.User{},
		enrollments: map[int64]models.Enrollment{},
		seq:         map[string]int64{},
	}
}

func (s state) clone() state {
	cp := newState()
	for k, v := range s.grades {
		cp.grades[k] = v
	}
	for k, v := range s.sections {
		cp.sections[k] = v
	}
	for k, v := range s.courses {
		cp.courses[k] = v
	}
	for k, v := range s.books {
		cp.books[k] = cloneBook(v)
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.enrollments {
		cp.enrollments[k] = v
	}
	for k, v := range s.seq {
		cp.seq[k] = v
	}
	return cp
}

func cloneBook(b models.Book) models.Book {
	cp := b
	if b.Description != nil {
		d := *b.Description
		cp.Description = &d
	}
	if b.Category != nil {
		c := *b.Category
		cp.Category = &c
	}
	return cp
}

// nextID mimics a BIGSERIAL sequence; ids are never reused, even after a rollback
func (s state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Store is an in-memory repositories.Store
type Store struct {
	mu    sync.Mutex
	state state
	nowFn func() time.Time
}

var _ repositories.Store = (*Store)(nil)

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{state: newState(), nowFn: func() time.Time { return time.Now().UTC() }}
}

// Atomic serializes units of work; fn sees a private copy that is published on success
func (s *Store) Atomic(ctx context.Context, fn repositories.AtomicFn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &tx{state: s.state.clone(), now: s.nowFn}
	if err := fn(ctx, tx.repositories()); err != nil {
		// sequences survive a rollback, as in PostgreSQL
		for k, v := range tx.state.seq {
			s.state.seq[k] = v
		}
		return err
	}
	s.state = tx.state
	return nil
}

// Close is a no-op
func (s *Store) Close() {}

type tx struct {
	state state
	now   func() time.Time
}

func (t *tx) repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Grades:      &gradeRepo{t},
		Sections:    &sectionRepo{t},
		Courses:     &courseRepo{t},
		Books:       &bookRepo{t},
		Users:       &userRepo{t},
		Enrollments: &enrollmentRepo{t},
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           dberrors.CodeUniqueViolation,
		Message:        "duplicate key value violates unique constraint \"" + constraint + "\"",
		ConstraintName: constraint,
	}
}

func foreignKeyViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           dberrors.CodeForeignKeyViolation,
		Message:        "insert, update or delete on table \"" + table + "\" violates foreign key constraint \"" + constraint + "\"",
		TableName:      table,
		ConstraintName: constraint,
	}
}

// deleteSection removes a section with its courses, their books and its enrollments
func (t *tx) deleteSection(id int64) {
	for cid, c := range t.state.courses {
		if c.SectionID == id {
			t.deleteCourse(cid)
		}
	}
	for eid, e := range t.state.enrollments {
		if e.SectionID == id {
			delete(t.state.enrollments, eid)
		}
	}
	delete(t.state.sections, id)
}

func (t *tx) deleteCourse(id int64) {
	for bid, b := range t.state.books {
		if b.CourseID == id {
			delete(t.state.books, bid)
		}
	}
	delete(t.state.courses, id)
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
