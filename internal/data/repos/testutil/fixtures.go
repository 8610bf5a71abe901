package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash fixture password: %v", err)
	}
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, lecturerID uuid.UUID, name string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:         uuid.New(),
		Name:       name,
		LecturerID: lecturerID,
		Difficulty: "Beginner",
		IsPublic:   true,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedAssignment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, title string) *types.Assignment {
	tb.Helper()
	a := &types.Assignment{
		ID:       uuid.New(),
		Title:    title,
		DueDate:  time.Now().Add(7 * 24 * time.Hour),
		CourseID: courseID,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assignment: %v", err)
	}
	return a
}

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, assignmentID, studentID uuid.UUID) *types.Submission {
	tb.Helper()
	s := &types.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		SubmittedAt:  time.Now(),
	}
	if err := s.SetFileRefs([]types.FileRef{{URL: "https://files.example/hw1.pdf", Filename: "hw1.pdf"}}); err != nil {
		tb.Fatalf("seed submission files: %v", err)
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}
