package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emre/enrollhub/internal/app/models"
)

var studentHeader = []string{"student_id", "fullname", "email", "password", "registered_courses"}

var courseHeader = []string{"course_id", "name", "instructor", "days", "time", "max_students", "enrolled_students"}

// CSVStore persists students.csv and courses.csv under a data directory,
// one record per entity with a header row.
type CSVStore struct {
	studentsPath string
	coursesPath  string
}

// NewCSVStore creates a CSV store rooted at dataDir. The directory is
// created if missing.
func NewCSVStore(dataDir string) (*CSVStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &CSVStore{
		studentsPath: filepath.Join(dataDir, "students.csv"),
		coursesPath:  filepath.Join(dataDir, "courses.csv"),
	}, nil
}

// Save writes both collections. Each file is written to a temp file and
// renamed so a crash mid-write cannot leave a truncated record set.
func (s *CSVStore) Save(ctx context.Context, students []*models.Student, courses []*models.Course) error {
	studentRows := make([][]string, 0, len(students)+1)
	studentRows = append(studentRows, studentHeader)
	for _, st := range students {
		studentRows = append(studentRows, []string{
			st.ID,
			st.FullName,
			st.Email,
			st.Password,
			JoinMembers(st.CourseIDs()),
		})
	}

	courseRows := make([][]string, 0, len(courses)+1)
	courseRows = append(courseRows, courseHeader)
	for _, c := range courses {
		courseRows = append(courseRows, []string{
			c.ID,
			c.Name,
			c.Instructor,
			c.Days,
			c.Time,
			strconv.Itoa(c.MaxStudents),
			JoinMembers(c.EnrolledIDs()),
		})
	}

	if err := writeCSV(s.studentsPath, studentRows); err != nil {
		return fmt.Errorf("failed to save students: %w", err)
	}
	if err := writeCSV(s.coursesPath, courseRows); err != nil {
		return fmt.Errorf("failed to save courses: %w", err)
	}
	return nil
}

// Load reads both collections. A missing or unreadable file means no data
// yet: the corresponding collection comes back empty.
func (s *CSVStore) Load(ctx context.Context) ([]*models.Student, []*models.Course, error) {
	students := []*models.Student{}
	courses := []*models.Course{}

	studentRows, err := readCSV(s.studentsPath)
	if err == nil {
		for _, row := range studentRows {
			if len(row) < len(studentHeader) {
				continue
			}
			st := models.NewStudent(row[0], row[1], row[2], row[3])
			st.Courses = SplitMembers(row[4])
			students = append(students, st)
		}
	}

	courseRows, err := readCSV(s.coursesPath)
	if err == nil {
		for _, row := range courseRows {
			if len(row) < len(courseHeader) {
				continue
			}
			maxStudents, convErr := strconv.Atoi(row[5])
			if convErr != nil {
				continue
			}
			c := models.NewCourse(row[0], row[1], row[2], row[3], row[4], maxStudents)
			c.Enrolled = SplitMembers(row[6])
			courses = append(courses, c)
		}
	}

	return students, courses, nil
}

// writeCSV writes rows atomically via rename.
func writeCSV(path string, rows [][]string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// readCSV returns data rows with the header stripped.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:]
	}
	return rows, nil
}
