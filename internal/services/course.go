package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campuscore/campuscore-backend/internal/domain"
	"github.com/campuscore/campuscore-backend/internal/data/repos"
	"github.com/campuscore/campuscore-backend/internal/platform/apierr"
	"github.com/campuscore/campuscore-backend/internal/platform/logger"
)

// CourseInput carries the caller-supplied fields for create and update.
type CourseInput struct {
	Name               string
	Description        string
	Difficulty         string
	Duration           string
	LearningObjectives []string
	Prerequisites      []string
	IsPublic           *bool
}

// CourseSummary is the catalog view: the course plus a derived assignment
// count, without the full assignment bodies.
type CourseSummary struct {
	Course          *types.Course `json:"course"`
	AssignmentCount int           `json:"assignmentCount"`
}

type CourseService interface {
	Create(ctx context.Context, lecturerID uuid.UUID, input CourseInput) (*types.Course, error)
	Update(ctx context.Context, courseID, lecturerID uuid.UUID, name, description string) (*types.Course, error)
	Delete(ctx context.Context, courseID, lecturerID uuid.UUID) error
	GetByID(ctx context.Context, courseID uuid.UUID) (*types.Course, error)
	ListAll(ctx context.Context) ([]*types.Course, error)
	ListPublic(ctx context.Context) ([]*CourseSummary, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error)
	ListEnrolledUsers(ctx context.Context, courseID uuid.UUID) ([]*types.User, error)
	Enroll(ctx context.Context, courseID, studentID uuid.UUID) error
	Unenroll(ctx context.Context, courseID, studentID uuid.UUID) error
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	assignmentRepo repos.AssignmentRepo
	enrollmentRepo repos.EnrollmentRepo
	userRepo       repos.UserRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	assignmentRepo repos.AssignmentRepo,
	enrollmentRepo repos.EnrollmentRepo,
	userRepo repos.UserRepo,
) CourseService {
	return &courseService{
		db:             db,
		log:            baseLog.With("service", "CourseService"),
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
	}
}

func (cs *courseService) Create(ctx context.Context, lecturerID uuid.UUID, input CourseInput) (*types.Course, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("course name is required"))
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = types.DifficultyBeginner
	}
	if !types.ValidDifficulty(difficulty) {
		return nil, apierr.Validation("invalid_difficulty", fmt.Errorf("unknown difficulty %q", difficulty))
	}
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	course := &types.Course{
		ID:                 uuid.New(),
		Name:               name,
		Description:        input.Description,
		LecturerID:         lecturerID,
		Difficulty:         difficulty,
		Duration:           input.Duration,
		LearningObjectives: input.LearningObjectives,
		Prerequisites:      input.Prerequisites,
		IsPublic:           isPublic,
	}
	if _, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	cs.log.Info("Course created", "course_id", course.ID.String(), "lecturer_id", lecturerID.String())
	return course, nil
}

func (cs *courseService) ownedCourse(ctx context.Context, courseID, lecturerID uuid.UUID) (*types.Course, error) {
	courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	if courses[0].LecturerID != lecturerID {
		return nil, apierr.Forbidden("not_course_owner", fmt.Errorf("course belongs to another lecturer"))
	}
	return courses[0], nil
}

func (cs *courseService) Update(ctx context.Context, courseID, lecturerID uuid.UUID, name, description string) (*types.Course, error) {
	if _, err := cs.ownedCourse(ctx, courseID, lecturerID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("course name is required"))
	}
	if err := cs.courseRepo.UpdateInfo(ctx, nil, courseID, name, description); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	courses, err := cs.courseRepo.GetByIDsWithAssignments(ctx, nil, []uuid.UUID{courseID})
	if err != nil || len(courses) == 0 {
		return nil, fmt.Errorf("reload course: %w", err)
	}
	return courses[0], nil
}

// Delete removes the course together with its assignments, their submissions
// and grades, and all enrollments, in one transaction.
func (cs *courseService) Delete(ctx context.Context, courseID, lecturerID uuid.UUID) error {
	if _, err := cs.ownedCourse(ctx, courseID, lecturerID); err != nil {
		return err
	}
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments, err := cs.assignmentRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
		if err != nil {
			return fmt.Errorf("list course assignments: %w", err)
		}
		assignmentIDs := make([]uuid.UUID, 0, len(assignments))
		for _, a := range assignments {
			assignmentIDs = append(assignmentIDs, a.ID)
		}
		if len(assignmentIDs) > 0 {
			if err := tx.Where("assignment_id IN ?", assignmentIDs).Delete(&types.Grade{}).Error; err != nil {
				return fmt.Errorf("delete grades: %w", err)
			}
			if err := tx.Where("assignment_id IN ?", assignmentIDs).Delete(&types.Submission{}).Error; err != nil {
				return fmt.Errorf("delete submissions: %w", err)
			}
		}
		if err := cs.assignmentRepo.FullDeleteByCourseIDs(ctx, tx, []uuid.UUID{courseID}); err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		if err := cs.enrollmentRepo.FullDeleteByCourseIDs(ctx, tx, []uuid.UUID{courseID}); err != nil {
			return fmt.Errorf("delete enrollments: %w", err)
		}
		if err := cs.courseRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{courseID}); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cs.log.Info("Course deleted", "course_id", courseID.String())
	return nil
}

func (cs *courseService) GetByID(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	courses, err := cs.courseRepo.GetByIDsWithAssignments(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	return courses[0], nil
}

func (cs *courseService) ListAll(ctx context.Context) ([]*types.Course, error) {
	courses, err := cs.courseRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (cs *courseService) ListPublic(ctx context.Context) ([]*CourseSummary, error) {
	courses, err := cs.courseRepo.GetPublic(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list public courses: %w", err)
	}
	summaries := make([]*CourseSummary, 0, len(courses))
	for _, c := range courses {
		summaries = append(summaries, &CourseSummary{
			Course:          c,
			AssignmentCount: len(c.Assignments),
		})
	}
	return summaries, nil
}

func (cs *courseService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*types.Course, error) {
	courseIDs, err := cs.enrollmentRepo.GetCourseIDsByStudentID(ctx, nil, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	if len(courseIDs) == 0 {
		return []*types.Course{}, nil
	}
	courses, err := cs.courseRepo.GetByIDsWithAssignments(ctx, nil, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("load enrolled courses: %w", err)
	}
	return courses, nil
}

func (cs *courseService) ListEnrolledUsers(ctx context.Context, courseID uuid.UUID) ([]*types.User, error) {
	courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return nil, apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	studentIDs, err := cs.enrollmentRepo.GetStudentIDsByCourseID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	if len(studentIDs) == 0 {
		return []*types.User{}, nil
	}
	students, err := cs.userRepo.GetByIDs(ctx, nil, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	return students, nil
}

func (cs *courseService) Enroll(ctx context.Context, courseID, studentID uuid.UUID) error {
	courses, err := cs.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if len(courses) == 0 {
		return apierr.NotFound("not_found", fmt.Errorf("course not found"))
	}
	created, err := cs.enrollmentRepo.Enroll(ctx, nil, courseID, []uuid.UUID{studentID})
	if err != nil {
		return fmt.Errorf("enroll: %w", err)
	}
	if created == 0 {
		return apierr.Validation("already_enrolled", fmt.Errorf("student already enrolled"))
	}
	cs.log.Info("Student enrolled", "course_id", courseID.String(), "student_id", studentID.String())
	return nil
}

func (cs *courseService) Unenroll(ctx context.Context, courseID, studentID uuid.UUID) error {
	if err := cs.enrollmentRepo.Unenroll(ctx, nil, courseID, []uuid.UUID{studentID}); err != nil {
		return fmt.Errorf("unenroll: %w", err)
	}
	cs.log.Info("Student unenrolled", "course_id", courseID.String(), "student_id", studentID.String())
	return nil
}
