package reminder

import (
	"context"

	"AssignReminders/internal/model"
	"AssignReminders/internal/repository"
)

// Database-backed implementations of the dispatcher's data interfaces.

type dbEventSource struct {
	moduleName  string
	eventType   string
	onlyVisible bool
}

// NewDBEventSource scans calendar events from the database, restricted
// to one module and event type.
func NewDBEventSource(moduleName, eventType string, onlyVisible bool) EventSource {
	return &dbEventSource{
		moduleName:  moduleName,
		eventType:   eventType,
		onlyVisible: onlyVisible,
	}
}

func (s *dbEventSource) Scan(ctx context.Context, window RunWindow, offsets []int64) ([]model.CalendarEvent, error) {
	return repository.UpcomingDueEvents(ctx, window.Start, window.End, offsets, s.moduleName, s.eventType, s.onlyVisible)
}

type dbWatermarkStore struct{}

// NewDBWatermarkStore persists watermarks in the reminder log table.
func NewDBWatermarkStore() WatermarkStore {
	return dbWatermarkStore{}
}

func (dbWatermarkStore) Latest(ctx context.Context) (int64, bool, error) {
	return repository.LatestWatermark(ctx)
}

func (dbWatermarkStore) Commit(ctx context.Context, end int64, logType string) error {
	return repository.CommitWatermark(ctx, end, logType)
}

type dbRoster struct{}

// NewDBRoster reads audience membership from the database.
func NewDBRoster() Roster {
	return dbRoster{}
}

func (dbRoster) UserByID(ctx context.Context, userID int64) (*model.User, error) {
	return repository.UserByID(ctx, userID)
}

func (dbRoster) UsersWithRole(ctx context.Context, courseID int64, roleIDs []int64) ([]model.User, error) {
	return repository.UsersWithRole(ctx, courseID, roleIDs)
}

func (dbRoster) GroupMembers(ctx context.Context, groupID int64) ([]model.User, error) {
	return repository.GroupMembers(ctx, groupID)
}

type dbCoursework struct{}

// NewDBCoursework serves both event content lookup and the
// authorization checks of recipient resolution.
func NewDBCoursework() interface {
	ContentSource
	CourseworkReader
} {
	return dbCoursework{}
}

func (dbCoursework) CourseworkForEvent(ctx context.Context, courseID, instance int64) (model.Course, model.Assignment, bool, error) {
	work, found, err := repository.CourseworkForEvent(ctx, courseID, instance)
	if err != nil || !found {
		return model.Course{}, model.Assignment{}, false, err
	}
	return work.Course, work.Assignment, true, nil
}

func (dbCoursework) CanSubmit(ctx context.Context, courseID, userID int64) (bool, error) {
	return repository.CanSubmit(ctx, courseID, userID)
}

func (dbCoursework) HasSubmitted(ctx context.Context, assignmentID, userID int64) (bool, error) {
	return repository.HasSubmitted(ctx, assignmentID, userID)
}
