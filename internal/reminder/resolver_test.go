package reminder

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssignReminders/internal/model"
)

type fakeRoster struct {
	users        map[int64]model.User
	roleHolders  map[int64][]model.User
	groupMembers map[int64][]model.User
	err          error
}

func (f *fakeRoster) UserByID(ctx context.Context, userID int64) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeRoster) UsersWithRole(ctx context.Context, courseID int64, roleIDs []int64) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roleHolders[courseID], nil
}

func (f *fakeRoster) GroupMembers(ctx context.Context, groupID int64) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.groupMembers[groupID], nil
}

type fakeCoursework struct {
	cannotSubmit map[int64]bool
	submitted    map[int64]bool
}

func (f *fakeCoursework) CanSubmit(ctx context.Context, courseID, userID int64) (bool, error) {
	return !f.cannotSubmit[userID], nil
}

func (f *fakeCoursework) HasSubmitted(ctx context.Context, assignmentID, userID int64) (bool, error) {
	return f.submitted[userID], nil
}

func userIDs(users []model.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestResolveUserOverride(t *testing.T) {
	roster := &fakeRoster{
		users: map[int64]model.User{7: {ID: 7}},
		// 角色名单不应被读取
		roleHolders: map[int64][]model.User{1: {{ID: 99}}},
	}
	r := NewResolver(roster, &fakeCoursework{}, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1, UserID: 7}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, userIDs(got))
}

func TestResolveUserOverrideMissingUser(t *testing.T) {
	r := NewResolver(&fakeRoster{}, &fakeCoursework{}, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1, UserID: 7}, 10)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveGroupOverride(t *testing.T) {
	roster := &fakeRoster{
		groupMembers: map[int64][]model.User{3: {{ID: 4}, {ID: 5}}},
	}
	r := NewResolver(roster, &fakeCoursework{}, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1, GroupID: 3}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, userIDs(got))
}

func TestResolveRoleAudienceFiltersAvailability(t *testing.T) {
	roster := &fakeRoster{
		roleHolders: map[int64][]model.User{1: {
			{ID: 1},
			{ID: 2, Suspended: true},
			{ID: 3, Deleted: true},
			{ID: 4, Auth: model.AuthNoLogin},
			{ID: 5},
		}},
	}
	r := NewResolver(roster, &fakeCoursework{}, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5}, userIDs(got))
}

func TestResolveOverridesKeepUnavailableAccounts(t *testing.T) {
	// 定向事件不做可用性过滤，停用账号由投递环节静默跳过
	roster := &fakeRoster{
		users: map[int64]model.User{7: {ID: 7, Suspended: true}},
	}
	r := NewResolver(roster, &fakeCoursework{}, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1, UserID: 7}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, userIDs(got))
}

func TestResolveDropsSubmittedAndUnauthorized(t *testing.T) {
	roster := &fakeRoster{
		roleHolders: map[int64][]model.User{1: {{ID: 1}, {ID: 2}, {ID: 3}}},
	}
	coursework := &fakeCoursework{
		cannotSubmit: map[int64]bool{1: true},
		submitted:    map[int64]bool{2: true},
	}
	r := NewResolver(roster, coursework, []int64{5})

	got, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1}, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{3}, userIDs(got))
}

func TestResolvePropagatesRosterError(t *testing.T) {
	roster := &fakeRoster{err: fmt.Errorf("db down")}
	r := NewResolver(roster, &fakeCoursework{}, []int64{5})

	_, err := r.Resolve(context.Background(), model.CalendarEvent{CourseID: 1}, 10)

	assert.Error(t, err)
}
