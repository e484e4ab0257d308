package reminder

import (
	"context"

	"AssignReminders/internal/model"
)

// Roster reads user membership for recipient resolution.
type Roster interface {
	UserByID(ctx context.Context, userID int64) (*model.User, error)
	UsersWithRole(ctx context.Context, courseID int64, roleIDs []int64) ([]model.User, error)
	GroupMembers(ctx context.Context, groupID int64) ([]model.User, error)
}

// CourseworkReader answers authorization and completion questions about
// an assignment.
type CourseworkReader interface {
	CanSubmit(ctx context.Context, courseID, userID int64) (bool, error)
	HasSubmitted(ctx context.Context, assignmentID, userID int64) (bool, error)
}

// Resolver turns an event's audience into the concrete recipient list.
type Resolver struct {
	roster     Roster
	coursework CourseworkReader
	roleIDs    []int64
}

// NewResolver constructs a resolver. roleIDs are the role ids whose
// holders receive course-wide reminders.
func NewResolver(roster Roster, coursework CourseworkReader, roleIDs []int64) *Resolver {
	return &Resolver{
		roster:     roster,
		coursework: coursework,
		roleIDs:    roleIDs,
	}
}

// Resolve selects the recipients of one event.
//
// The audience comes from the narrowest configured override: a user
// event targets that single user, a group event its members, any other
// event all holders of the configured roles in the course. Only the
// role-wide audience is pre-filtered for account availability; targeted
// overrides keep unavailable accounts, which delivery later skips
// without failing.
//
// Every candidate is then dropped unless they can still submit and have
// not submitted yet.
func (r *Resolver) Resolve(ctx context.Context, event model.CalendarEvent, assignmentID int64) ([]model.User, error) {
	candidates, err := r.audience(ctx, event)
	if err != nil {
		return nil, err
	}

	recipients := make([]model.User, 0, len(candidates))
	for _, user := range candidates {
		ok, err := r.coursework.CanSubmit(ctx, event.CourseID, user.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		done, err := r.coursework.HasSubmitted(ctx, assignmentID, user.ID)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		recipients = append(recipients, user)
	}
	return recipients, nil
}

func (r *Resolver) audience(ctx context.Context, event model.CalendarEvent) ([]model.User, error) {
	switch {
	case event.UserID != 0:
		user, err := r.roster.UserByID(ctx, event.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		return []model.User{*user}, nil

	case event.GroupID != 0:
		return r.roster.GroupMembers(ctx, event.GroupID)

	default:
		users, err := r.roster.UsersWithRole(ctx, event.CourseID, r.roleIDs)
		if err != nil {
			return nil, err
		}
		available := make([]model.User, 0, len(users))
		for _, user := range users {
			if user.Suspended || user.Deleted || user.Auth == model.AuthNoLogin {
				continue
			}
			available = append(available, user)
		}
		return available, nil
	}
}
