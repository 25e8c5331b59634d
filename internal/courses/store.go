package courses

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnhub/backend/internal/models"
	"github.com/lib/pq"
)

// ErrCertificateExists is returned when a certificate for the (user, course)
// pair has already been issued.
var ErrCertificateExists = errors.New("certificate already issued")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListCourses() ([]models.Course, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.title, c.description, c.created_at,
		        (SELECT COUNT(*) FROM lessons l
		         JOIN course_modules m ON m.id = l.module_id
		         WHERE m.course_id = c.id) AS lesson_count
		 FROM courses c ORDER BY c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.LessonCount); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// CountLessons returns the size of the course's flattened curriculum: every
// lesson across every module, the ordering that assigns stable positions.
func (s *Store) CountLessons(courseID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM lessons l
		 JOIN course_modules m ON m.id = l.module_id
		 WHERE m.course_id = $1`,
		courseID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return n, nil
}

func (s *Store) CourseExists(courseID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, courseID,
	).Scan(&exists)
	return exists, err
}

// CreateEnrollment enrolls the user, reporting whether a new row was
// inserted. Re-enrolling is a no-op.
func (s *Store) CreateEnrollment(userID, courseID int64) (bool, error) {
	result, err := s.db.Exec(
		`INSERT INTO enrollments (user_id, course_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		userID, courseID,
	)
	if err != nil {
		return false, fmt.Errorf("create enrollment: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (s *Store) InsertCertificate(userID, courseID int64) (*models.Certificate, error) {
	cert := models.Certificate{UserID: userID, CourseID: courseID}
	err := s.db.QueryRow(
		`INSERT INTO certificates (user_id, course_id) VALUES ($1, $2)
		 RETURNING id, issued_at`,
		userID, courseID,
	).Scan(&cert.ID, &cert.IssuedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrCertificateExists
		}
		return nil, fmt.Errorf("insert certificate: %w", err)
	}
	return &cert, nil
}

func (s *Store) ListCertificates(userID int64) ([]models.Certificate, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, course_id, issued_at FROM certificates
		 WHERE user_id = $1 ORDER BY issued_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()

	var certs []models.Certificate
	for rows.Next() {
		var c models.Certificate
		if err := rows.Scan(&c.ID, &c.UserID, &c.CourseID, &c.IssuedAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
