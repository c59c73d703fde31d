package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/assignment"
	"github.com/rovicpogi/Stoninonew/internal/domain/student"
	"github.com/rovicpogi/Stoninonew/internal/pkg/database"
	"github.com/rovicpogi/Stoninonew/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAssignment(t *testing.T, repo assignment.AssignmentRepository, teacherID, title, kind string, grade, section *string) assignment.Assignment {
	t.Helper()
	a, err := repo.Create(context.Background(), assignment.Assignment{
		TeacherID:  teacherID,
		Title:      title,
		Type:       kind,
		GradeLevel: grade,
		Section:    section,
		FilePath:   "assignments/" + title + ".pdf",
		FileName:   title + ".pdf",
		FileSize:   1024,
	})
	require.NoError(t, err)
	return a
}

func TestAssignmentRepository_ListForClass(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := postgresql.NewAssignmentRepository(db)
	teacherID := createTestTeacher(t, db)

	createTestAssignment(t, repo, teacherID, "g7-sampaguita", assignment.TypeAssignment, strPtr("Grade 7"), strPtr("Sampaguita"))
	createTestAssignment(t, repo, teacherID, "g7-all", assignment.TypeLesson, strPtr("Grade 7"), nil)
	createTestAssignment(t, repo, teacherID, "everyone", assignment.TypeLesson, nil, nil)
	createTestAssignment(t, repo, teacherID, "g8-rosal", assignment.TypeAssignment, strPtr("Grade 8"), strPtr("Rosal"))

	titles := func(list []assignment.Assignment) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.Title)
		}
		return out
	}

	got, err := repo.ListForClass(ctx, assignment.AssignmentFilter{GradeLevel: "Grade 7", Section: "Sampaguita"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"g7-sampaguita", "g7-all", "everyone"}, titles(got))

	got, err = repo.ListForClass(ctx, assignment.AssignmentFilter{GradeLevel: "Grade 7", Section: "Sampaguita", Type: assignment.TypeLesson})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"g7-all", "everyone"}, titles(got))

	classes, err := repo.ClassesByTeacher(ctx, teacherID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []student.Class{{GradeLevel: "Grade 7", Section: "Sampaguita"}, {GradeLevel: "Grade 8", Section: "Rosal"}}, classes)

	count, err := repo.CountByTeacher(ctx, teacherID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestAssignmentRepository_GetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	_, err := postgresql.NewAssignmentRepository(db).GetByID(context.Background(), "0190a3c4-5b6d-7e8f-9a0b-1c2d3e4f5a6b")
	assert.ErrorIs(t, err, assignment.ErrAssignmentNotFound)
}

func seedSubmission(t *testing.T, db *database.DB) (assignment.SubmissionRepository, assignment.Submission, string) {
	t.Helper()
	teacherID := createTestTeacher(t, db)
	a := createTestAssignment(t, postgresql.NewAssignmentRepository(db), teacherID, "essay", assignment.TypeAssignment, strPtr("Grade 7"), strPtr("Sampaguita"))
	studentID := createTestStudent(t, db, "2025-0001", "Juan", "Dela Cruz", "Grade 7", "Sampaguita", nil)

	repo := postgresql.NewSubmissionRepository(db)
	s, err := repo.Create(context.Background(), assignment.Submission{
		AssignmentID: a.ID,
		StudentID:    studentID,
		FilePath:     "submissions/first.docx",
		FileName:     "first.docx",
		FileSize:     10,
	})
	require.NoError(t, err)
	return repo, s, teacherID
}

func TestSubmissionRepository_CreateJoinsAssignmentAndStudent(t *testing.T) {
	db := setupDB(t)
	_, s, teacherID := seedSubmission(t, db)

	assert.Equal(t, assignment.SubmissionStatusSubmitted, s.Status)
	assert.Equal(t, "essay", s.AssignmentTitle)
	assert.Equal(t, teacherID, s.AssignmentTeacherID)
	assert.Equal(t, "Juan Dela Cruz", s.StudentName)
	assert.Nil(t, s.Grade)
}

func TestSubmissionRepository_GradeThenResubmit(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo, s, teacherID := seedSubmission(t, db)

	grade := 88.5
	graded, err := repo.Grade(ctx, s.ID, &grade, strPtr("Good"), assignment.SubmissionStatusGraded, time.Now())
	require.NoError(t, err)
	assert.Equal(t, assignment.SubmissionStatusGraded, graded.Status)
	require.NotNil(t, graded.Grade)
	assert.InDelta(t, 88.5, *graded.Grade, 0.001)

	pending, err := repo.CountPendingForTeacher(ctx, teacherID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pending)

	// feedback only keeps the stored grade
	regraded, err := repo.Grade(ctx, s.ID, nil, strPtr("Revise the intro"), assignment.SubmissionStatusSubmitted, time.Now())
	require.NoError(t, err)
	require.NotNil(t, regraded.Grade)
	assert.InDelta(t, 88.5, *regraded.Grade, 0.001)
	assert.Equal(t, "Revise the intro", *regraded.Feedback)

	s.FilePath, s.FileName, s.FileSize = "submissions/second.docx", "second.docx", 20
	resubmitted, err := repo.Resubmit(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, assignment.SubmissionStatusSubmitted, resubmitted.Status)
	assert.Equal(t, "second.docx", resubmitted.FileName)
	assert.False(t, resubmitted.SubmittedAt.Before(s.SubmittedAt))

	pending, err = repo.CountPendingForTeacher(ctx, teacherID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	same, err := repo.GetByAssignmentAndStudent(ctx, s.AssignmentID, s.StudentID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, same.ID)
}

func TestSubmissionRepository_ListFilters(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo, s, teacherID := seedSubmission(t, db)

	list, err := repo.ListForTeacher(ctx, teacherID, assignment.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListForTeacher(ctx, createTestTeacher(t, db), assignment.SubmissionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = repo.ListForStudent(ctx, s.StudentID, assignment.SubmissionFilter{AssignmentID: s.AssignmentID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, s.ID, list[0].ID)
}

func TestSubmissionRepository_Resubmit_NotFound(t *testing.T) {
	db := setupDB(t)
	repo := postgresql.NewSubmissionRepository(db)
	_, err := repo.Resubmit(context.Background(), assignment.Submission{ID: "0190a3c4-5b6d-7e8f-9a0b-1c2d3e4f5a6b"})
	assert.ErrorIs(t, err, assignment.ErrSubmissionNotFound)
}
