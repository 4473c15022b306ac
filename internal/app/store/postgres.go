package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/enrollhub/internal/app/models"
)

// PostgresStore persists the same two record shapes as the CSV store in two
// tables. Membership columns keep the |-joined text form so the backends
// stay interchangeable row for row.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store and ensures both tables exist.
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			student_id TEXT PRIMARY KEY,
			fullname TEXT NOT NULL,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			registered_courses TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			course_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			instructor TEXT NOT NULL,
			days TEXT NOT NULL,
			time TEXT NOT NULL,
			max_students INTEGER NOT NULL,
			enrolled_students TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save replaces both tables with the given collections in one transaction.
func (s *PostgresStore) Save(ctx context.Context, students []*models.Student, courses []*models.Course) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("failed to clear students: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if len(students) > 0 {
		insert := builder.Insert("students").
			Columns("student_id", "fullname", "email", "password", "registered_courses")
		for _, st := range students {
			insert = insert.Values(st.ID, st.FullName, st.Email, st.Password, JoinMembers(st.CourseIDs()))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build student insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert students: %w", err)
		}
	}

	if len(courses) > 0 {
		insert := builder.Insert("courses").
			Columns("course_id", "name", "instructor", "days", "time", "max_students", "enrolled_students")
		for _, c := range courses {
			insert = insert.Values(c.ID, c.Name, c.Instructor, c.Days, c.Time, c.MaxStudents, JoinMembers(c.EnrolledIDs()))
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build course insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert courses: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// Load reconstructs both collections. Empty tables load as empty slices.
func (s *PostgresStore) Load(ctx context.Context) ([]*models.Student, []*models.Course, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	students := []*models.Student{}
	query, args, err := builder.
		Select("student_id", "fullname", "email", "password", "registered_courses").
		From("students").ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build student select: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load students: %w", err)
	}
	for rows.Next() {
		var id, fullName, email, password, registered string
		if err := rows.Scan(&id, &fullName, &email, &password, &registered); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		st := models.NewStudent(id, fullName, email, password)
		st.Courses = SplitMembers(registered)
		students = append(students, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading student rows: %w", err)
	}

	courses := []*models.Course{}
	query, args, err = builder.
		Select("course_id", "name", "instructor", "days", "time", "max_students", "enrolled_students").
		From("courses").ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build course select: %w", err)
	}

	rows, err = s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load courses: %w", err)
	}
	for rows.Next() {
		var id, name, instructor, days, timeRange, enrolled string
		var maxStudents int
		if err := rows.Scan(&id, &name, &instructor, &days, &timeRange, &maxStudents, &enrolled); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		c := models.NewCourse(id, name, instructor, days, timeRange, maxStudents)
		c.Enrolled = SplitMembers(enrolled)
		courses = append(courses, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading course rows: %w", err)
	}

	return students, courses, nil
}
