package courses

import (
	"errors"
	"testing"

	"github.com/learnhub/backend/internal/models"
)

type fakeProgressReader struct {
	prog *models.CourseProgress
	err  error
}

func (f *fakeProgressReader) GetCourseProgress(userID, courseID int64) (*models.CourseProgress, error) {
	return f.prog, f.err
}

func TestIssueCertificateRequiresFullCompletion(t *testing.T) {
	tests := []struct {
		name string
		prog *models.CourseProgress
	}{
		{"never started", nil},
		{"partially complete", &models.CourseProgress{Percentage: 75}},
		{"almost complete", &models.CourseProgress{Percentage: 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil, nil, &fakeProgressReader{prog: tt.prog})
			_, err := svc.IssueCertificate(1, 1)
			if !errors.Is(err, ErrCourseIncomplete) {
				t.Fatalf("expected ErrCourseIncomplete, got %v", err)
			}
		})
	}
}

func TestIssueCertificateProgressLookupFailure(t *testing.T) {
	svc := NewService(nil, nil, &fakeProgressReader{err: errors.New("connection reset")})
	_, err := svc.IssueCertificate(1, 1)
	if err == nil {
		t.Fatal("expected error when progress lookup fails")
	}
	if errors.Is(err, ErrCourseIncomplete) {
		t.Fatal("lookup failure must not be reported as incomplete course")
	}
}
