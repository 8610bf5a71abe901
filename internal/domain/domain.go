package domain

import (
	"github.com/campuscore/campuscore-backend/internal/domain/course"
	"github.com/campuscore/campuscore-backend/internal/domain/feed"
	"github.com/campuscore/campuscore-backend/internal/domain/gradebook"
	"github.com/campuscore/campuscore-backend/internal/domain/ops"
	"github.com/campuscore/campuscore-backend/internal/domain/user"
)

const (
	RoleStudent  = user.RoleStudent
	RoleLecturer = user.RoleLecturer

	DifficultyBeginner     = course.DifficultyBeginner
	DifficultyIntermediate = course.DifficultyIntermediate
	DifficultyAdvanced     = course.DifficultyAdvanced

	TypeNews  = feed.TypeNews
	TypeEvent = feed.TypeEvent
)

var (
	ValidRole          = user.ValidRole
	ValidDifficulty    = course.ValidDifficulty
	ValidNewsEventType = feed.ValidType
)

type User = user.User

type Course = course.Course
type Assignment = course.Assignment
type Enrollment = course.Enrollment

type Submission = gradebook.Submission
type FileRef = gradebook.FileRef
type Grade = gradebook.Grade

type NewsEvent = feed.NewsEvent

type SystemHealthLog = ops.SystemHealthLog
