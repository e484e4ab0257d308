package model

// User mirrors the LMS user table. Auth is the authentication plugin
// identifier; accounts with AuthNoLogin can never sign in and are
// excluded from role-based recipient resolution.
type User struct {
	ID        int64  `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Nickname  string `gorm:"size:100" json:"nickname"`
	Auth      string `gorm:"size:32;not null;default:'manual'" json:"auth"`
	Timezone  string `gorm:"size:64" json:"timezone"`
	Suspended bool   `gorm:"default:false" json:"suspended"`
	Deleted   bool   `gorm:"default:false" json:"deleted"`
}

func (User) TableName() string {
	return "users"
}

const AuthNoLogin = "nologin"

// Enrollment links a user to a course. Status follows the LMS enrolment
// states; only EnrollmentActive rows participate in recipient resolution.
type Enrollment struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64  `gorm:"index:idx_enrol_user_course;not null" json:"user_id"`
	CourseID int64  `gorm:"index:idx_enrol_user_course;not null" json:"course_id"`
	Status   string `gorm:"size:32;not null;default:'active'" json:"status"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

const (
	EnrollmentActive    = "active"
	EnrollmentSuspended = "suspended"
)

// RoleAssignment grants a role to a user within a course context.
type RoleAssignment struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64 `gorm:"index;not null" json:"user_id"`
	RoleID   int64 `gorm:"index;not null" json:"role_id"`
	CourseID int64 `gorm:"index;not null" json:"course_id"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

// Group mirrors the LMS course group table.
type Group struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	CourseID int64  `gorm:"index;not null" json:"course_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember links a user to a group.
type GroupMember struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID int64 `gorm:"index:idx_group_member;not null" json:"group_id"`
	UserID  int64 `gorm:"index:idx_group_member;not null" json:"user_id"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
