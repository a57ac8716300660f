package services

import (
	"context"
	"errors"
	"testing"

	"github.com/quizwhiz/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog returns a fixed file list regardless of role.
type fakeCatalog struct {
	files []models.QuizFileMetadata
}

func (f *fakeCatalog) ListFiles(ctx context.Context, role models.RoleTag) []models.QuizFileMetadata {
	return f.files
}

// fakeQuiz serves prepared question pools keyed by path.
type fakeQuiz struct {
	pools map[string][]models.Question
	errs  map[string]error
}

func (f *fakeQuiz) LoadQuestions(ctx context.Context, path string) ([]models.Question, *models.ParseStats, error) {
	if err, ok := f.errs[path]; ok {
		return nil, nil, err
	}
	return f.pools[path], &models.ParseStats{}, nil
}

func (f *fakeQuiz) BuildQuiz(ctx context.Context, path string, count int) ([]models.Question, error) {
	pool, _, err := f.LoadQuestions(ctx, path)
	if err != nil {
		return nil, err
	}
	return sampleWithoutReplacement(pool, count), nil
}

func poolFor(path string, n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:                 i + 1,
			Question:           path,
			Options:            [4]string{"A", "B", "C", "D"},
			CorrectAnswerIndex: 0,
		}
	}
	return questions
}

func fileEntry(path string, quota int) models.QuizFileMetadata {
	return models.QuizFileMetadata{Path: path, Role: models.RoleTeller, ExamQuestions: quota}
}

func TestExamService_ComposeExam(t *testing.T) {
	t.Run("draws each file's quota", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{
				fileEntry("a.xlsx", 3),
				fileEntry("b.xlsx", 2),
			}},
			&fakeQuiz{pools: map[string][]models.Question{
				"a.xlsx": poolFor("a.xlsx", 10),
				"b.xlsx": poolFor("b.xlsx", 10),
			}},
			newTestLogger(),
		)

		exam, err := svc.ComposeExam(context.Background(), models.RoleTeller)

		require.NoError(t, err)
		require.Len(t, exam, 5)

		perFile := make(map[string]int)
		for _, q := range exam {
			perFile[q.Question]++
		}
		assert.Equal(t, 3, perFile["a.xlsx"])
		assert.Equal(t, 2, perFile["b.xlsx"])
	})

	t.Run("quota above pool size is capped", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{fileEntry("small.xlsx", 20)}},
			&fakeQuiz{pools: map[string][]models.Question{"small.xlsx": poolFor("small.xlsx", 4)}},
			newTestLogger(),
		)

		exam, err := svc.ComposeExam(context.Background(), models.RoleTeller)

		require.NoError(t, err)
		assert.Len(t, exam, 4)
	})

	t.Run("no duplicate draws within a file", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{fileEntry("a.xlsx", 5)}},
			&fakeQuiz{pools: map[string][]models.Question{"a.xlsx": poolFor("a.xlsx", 8)}},
			newTestLogger(),
		)

		exam, err := svc.ComposeExam(context.Background(), models.RoleTeller)

		require.NoError(t, err)
		seen := make(map[int]bool)
		for _, q := range exam {
			assert.False(t, seen[q.ID], "question %d drawn twice", q.ID)
			seen[q.ID] = true
		}
	})

	t.Run("failing file is skipped, the rest survive", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{
				fileEntry("broken.xlsx", 3),
				fileEntry("ok.xlsx", 2),
			}},
			&fakeQuiz{
				pools: map[string][]models.Question{"ok.xlsx": poolFor("ok.xlsx", 10)},
				errs:  map[string]error{"broken.xlsx": errors.New("corrupt workbook")},
			},
			newTestLogger(),
		)

		exam, err := svc.ComposeExam(context.Background(), models.RoleTeller)

		require.NoError(t, err)
		require.Len(t, exam, 2)
		for _, q := range exam {
			assert.Equal(t, "ok.xlsx", q.Question)
		}
	})

	t.Run("no files for role", func(t *testing.T) {
		svc := NewExamService(&fakeCatalog{}, &fakeQuiz{}, newTestLogger())

		_, err := svc.ComposeExam(context.Background(), models.RoleTeller)
		assert.ErrorIs(t, err, ErrNoFilesForRole)
	})

	t.Run("every file failing yields no valid questions", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{
				fileEntry("a.xlsx", 3),
				fileEntry("b.xlsx", 2),
			}},
			&fakeQuiz{errs: map[string]error{
				"a.xlsx": errors.New("corrupt workbook"),
				"b.xlsx": errors.New("corrupt workbook"),
			}},
			newTestLogger(),
		)

		_, err := svc.ComposeExam(context.Background(), models.RoleTeller)
		assert.ErrorIs(t, err, ErrNoValidQuestions)
	})

	t.Run("zero quota contributes nothing", func(t *testing.T) {
		svc := NewExamService(
			&fakeCatalog{files: []models.QuizFileMetadata{
				fileEntry("skip.xlsx", 0),
				fileEntry("keep.xlsx", 2),
			}},
			&fakeQuiz{pools: map[string][]models.Question{
				"skip.xlsx": poolFor("skip.xlsx", 10),
				"keep.xlsx": poolFor("keep.xlsx", 10),
			}},
			newTestLogger(),
		)

		exam, err := svc.ComposeExam(context.Background(), models.RoleTeller)

		require.NoError(t, err)
		require.Len(t, exam, 2)
		for _, q := range exam {
			assert.Equal(t, "keep.xlsx", q.Question)
		}
	})
}
