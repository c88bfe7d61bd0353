package memory

import (
	"context"

	"github.com/AriaGT/sistema-libreria/internal/app/models"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
)

type gradeRepo struct{ t *tx }

func (r *gradeRepo) checkName(id int64, name string) error {
	for _, g := range r.t.state.grades {
		if g.ID != id && g.Name == name {
			return uniqueViolation("grades_name_key")
		}
	}
	return nil
}

func (r *gradeRepo) Create(_ context.Context, grade *models.Grade) error {
	if err := r.checkName(0, grade.Name); err != nil {
		return err
	}
	grade.ID = r.t.state.nextID("grades")
	r.t.state.grades[grade.ID] = *grade
	return nil
}

func (r *gradeRepo) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	g, ok := r.t.state.grades[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &g, nil
}

func (r *gradeRepo) List(_ context.Context) ([]*models.Grade, error) {
	out := []*models.Grade{}
	for _, id := range sortedKeys(r.t.state.grades) {
		g := r.t.state.grades[id]
		out = append(out, &g)
	}
	return out, nil
}

func (r *gradeRepo) Update(_ context.Context, grade *models.Grade) error {
	if _, ok := r.t.state.grades[grade.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkName(grade.ID, grade.Name); err != nil {
		return err
	}
	r.t.state.grades[grade.ID] = *grade
	return nil
}

func (r *gradeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.grades[id]; !ok {
		return repositories.ErrNotFound
	}
	for sid, s := range r.t.state.sections {
		if s.GradeID == id {
			r.t.deleteSection(sid)
		}
	}
	delete(r.t.state.grades, id)
	return nil
}

type sectionRepo struct{ t *tx }

func (r *sectionRepo) checkRefs(s *models.Section) error {
	if _, ok := r.t.state.grades[s.GradeID]; !ok {
		return foreignKeyViolation("sections", "sections_grade_id_fkey")
	}
	return nil
}

func (r *sectionRepo) Create(_ context.Context, section *models.Section) error {
	if err := r.checkRefs(section); err != nil {
		return err
	}
	section.ID = r.t.state.nextID("sections")
	r.t.state.sections[section.ID] = *section
	return nil
}

func (r *sectionRepo) GetByID(_ context.Context, id int64) (*models.Section, error) {
	s, ok := r.t.state.sections[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r *sectionRepo) ListByGrade(_ context.Context, gradeID int64) ([]*models.Section, error) {
	out := []*models.Section{}
	for _, id := range sortedKeys(r.t.state.sections) {
		if s := r.t.state.sections[id]; s.GradeID == gradeID {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *sectionRepo) Update(_ context.Context, section *models.Section) error {
	if _, ok := r.t.state.sections[section.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkRefs(section); err != nil {
		return err
	}
	r.t.state.sections[section.ID] = *section
	return nil
}

func (r *sectionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.sections[id]; !ok {
		return repositories.ErrNotFound
	}
	r.t.deleteSection(id)
	return nil
}

type courseRepo struct{ t *tx }

func (r *courseRepo) checkRefs(c *models.Course) error {
	if _, ok := r.t.state.sections[c.SectionID]; !ok {
		return foreignKeyViolation("courses", "courses_section_id_fkey")
	}
	if _, ok := r.t.state.users[c.TeacherID]; !ok {
		return foreignKeyViolation("courses", "courses_teacher_id_fkey")
	}
	return nil
}

func (r *courseRepo) Create(_ context.Context, course *models.Course) error {
	if err := r.checkRefs(course); err != nil {
		return err
	}
	course.ID = r.t.state.nextID("courses")
	r.t.state.courses[course.ID] = *course
	return nil
}

func (r *courseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := r.t.state.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *courseRepo) ListBySection(_ context.Context, sectionID int64) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, id := range sortedKeys(r.t.state.courses) {
		if c := r.t.state.courses[id]; c.SectionID == sectionID {
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *courseRepo) Update(_ context.Context, course *models.Course) error {
	if _, ok := r.t.state.courses[course.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkRefs(course); err != nil {
		return err
	}
	r.t.state.courses[course.ID] = *course
	return nil
}

func (r *courseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	r.t.deleteCourse(id)
	return nil
}

func (r *courseRepo) ExistsByTeacher(_ context.Context, teacherID int64) (bool, error) {
	for _, c := range r.t.state.courses {
		if c.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

type bookRepo struct{ t *tx }

func (r *bookRepo) checkRefs(b *models.Book) error {
	if _, ok := r.t.state.courses[b.CourseID]; !ok {
		return foreignKeyViolation("books", "books_course_id_fkey")
	}
	if _, ok := r.t.state.users[b.CreatedBy]; !ok {
		return foreignKeyViolation("books", "books_created_by_fkey")
	}
	return nil
}

func (r *bookRepo) Create(_ context.Context, book *models.Book) error {
	if err := r.checkRefs(book); err != nil {
		return err
	}
	book.ID = r.t.state.nextID("books")
	book.CreatedAt = r.t.now()
	r.t.state.books[book.ID] = cloneBook(*book)
	return nil
}

func (r *bookRepo) GetByID(_ context.Context, id int64) (*models.Book, error) {
	b, ok := r.t.state.books[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	b = cloneBook(b)
	return &b, nil
}

func (r *bookRepo) ListByCourse(_ context.Context, courseID int64) ([]*models.Book, error) {
	out := []*models.Book{}
	for _, id := range sortedKeys(r.t.state.books) {
		if b := r.t.state.books[id]; b.CourseID == courseID {
			b = cloneBook(b)
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *bookRepo) Update(_ context.Context, book *models.Book) error {
	current, ok := r.t.state.books[book.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkRefs(book); err != nil {
		return err
	}
	updated := cloneBook(*book)
	updated.CreatedAt = current.CreatedAt
	r.t.state.books[book.ID] = updated
	return nil
}

func (r *bookRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.books[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.t.state.books, id)
	return nil
}

func (r *bookRepo) ExistsByCreator(_ context.Context, userID int64) (bool, error) {
	for _, b := range r.t.state.books {
		if b.CreatedBy == userID {
			return true, nil
		}
	}
	return false, nil
}

type userRepo struct{ t *tx }

func (r *userRepo) checkEmail(id int64, email string) error {
	for _, u := range r.t.state.users {
		if u.ID != id && u.Email == email {
			return uniqueViolation("users_email_key")
		}
	}
	return nil
}

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	if err := r.checkEmail(0, user.Email); err != nil {
		return err
	}
	user.ID = r.t.state.nextID("users")
	user.CreatedAt = r.t.now()
	r.t.state.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.t.state.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.t.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) List(_ context.Context) ([]*models.User, error) {
	out := []*models.User{}
	for _, id := range sortedKeys(r.t.state.users) {
		u := r.t.state.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	current, ok := r.t.state.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkEmail(user.ID, user.Email); err != nil {
		return err
	}
	updated := *user
	updated.CreatedAt = current.CreatedAt
	r.t.state.users[user.ID] = updated
	return nil
}

// Delete refuses while courses, books or enrollments still reference the user
func (r *userRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.users[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, c := range r.t.state.courses {
		if c.TeacherID == id {
			return foreignKeyViolation("courses", "courses_teacher_id_fkey")
		}
	}
	for _, b := range r.t.state.books {
		if b.CreatedBy == id {
			return foreignKeyViolation("books", "books_created_by_fkey")
		}
	}
	for _, e := range r.t.state.enrollments {
		if e.StudentID == id {
			return foreignKeyViolation("student_sections", "student_sections_student_id_fkey")
		}
	}
	delete(r.t.state.users, id)
	return nil
}

type enrollmentRepo struct{ t *tx }

func (r *enrollmentRepo) checkRefs(e *models.Enrollment) error {
	if _, ok := r.t.state.users[e.StudentID]; !ok {
		return foreignKeyViolation("student_sections", "student_sections_student_id_fkey")
	}
	if _, ok := r.t.state.sections[e.SectionID]; !ok {
		return foreignKeyViolation("student_sections", "student_sections_section_id_fkey")
	}
	for _, other := range r.t.state.enrollments {
		if other.ID != e.ID && other.StudentID == e.StudentID && other.SectionID == e.SectionID {
			return uniqueViolation("uq_student_section")
		}
	}
	return nil
}

func (r *enrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	e.ID = 0
	if err := r.checkRefs(e); err != nil {
		return err
	}
	e.ID = r.t.state.nextID("student_sections")
	r.t.state.enrollments[e.ID] = *e
	return nil
}

func (r *enrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := r.t.state.enrollments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r *enrollmentRepo) FindBySectionAndStudent(_ context.Context, sectionID, studentID int64) (*models.Enrollment, error) {
	for _, e := range r.t.state.enrollments {
		if e.SectionID == sectionID && e.StudentID == studentID {
			return &e, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *enrollmentRepo) ListBySection(_ context.Context, sectionID int64) ([]*models.Enrollment, error) {
	out := []*models.Enrollment{}
	for _, id := range sortedKeys(r.t.state.enrollments) {
		if e := r.t.state.enrollments[id]; e.SectionID == sectionID {
			out = append(out, &e)
		}
	}
	return out, nil
}

func (r *enrollmentRepo) ListStudents(_ context.Context, sectionID int64) ([]*models.User, error) {
	enrolled := map[int64]bool{}
	for _, e := range r.t.state.enrollments {
		if e.SectionID == sectionID {
			enrolled[e.StudentID] = true
		}
	}
	out := []*models.User{}
	for _, id := range sortedKeys(r.t.state.users) {
		if enrolled[id] {
			u := r.t.state.users[id]
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *enrollmentRepo) Update(_ context.Context, e *models.Enrollment) error {
	if _, ok := r.t.state.enrollments[e.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := r.checkRefs(e); err != nil {
		return err
	}
	r.t.state.enrollments[e.ID] = *e
	return nil
}

func (r *enrollmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.t.state.enrollments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.t.state.enrollments, id)
	return nil
}

func (r *enrollmentRepo) DeleteByStudent(_ context.Context, studentID int64) (int64, error) {
	var n int64
	for id, e := range r.t.state.enrollments {
		if e.StudentID == studentID {
			delete(r.t.state.enrollments, id)
			n++
		}
	}
	return n, nil
}
