package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AssignReminders/internal/model"
)

func testSpec() TemplateSpec {
	return TemplateSpec{
		Sender:     "admin",
		DateFormat: "2006-01-02 15:04",
		Location:   time.UTC,
	}
}

func TestBuildTemplateRendersFields(t *testing.T) {
	course := model.Course{FullName: "Operating Systems"}
	assignment := model.Assignment{Name: "lab3 virtual memory"}
	due := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC).Unix()

	tmpl := BuildTemplate(course, assignment, due, LeadTime{Label: "3 days"}, testSpec())

	assert.Equal(t, "Operating Systems", tmpl.CourseName)
	// 作业名只保留第一个空白符前的部分
	assert.Equal(t, "lab3", tmpl.AssignName)
	assert.Equal(t, "2026-03-10 12:00", tmpl.DueAt)
	assert.Equal(t, "3 days", tmpl.AheadLabel)
	assert.Equal(t, "admin", tmpl.Sender)
}

func TestBuildTemplateSingleWordName(t *testing.T) {
	tmpl := BuildTemplate(model.Course{}, model.Assignment{Name: "essay"}, 0, LeadTime{}, testSpec())

	assert.Equal(t, "essay", tmpl.AssignName)
}

func TestSpecializeCopiesSharedFields(t *testing.T) {
	tmpl := BuildTemplate(model.Course{FullName: "Maths"}, model.Assignment{Name: "hw1"}, 0, LeadTime{Label: "1 day"}, testSpec())

	a, err := tmpl.Specialize(model.User{ID: 1, Username: "alice"})
	require.NoError(t, err)
	b, err := tmpl.Specialize(model.User{ID: 2, Username: "bob"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.To.ID)
	assert.Equal(t, int64(2), b.To.ID)
	assert.Equal(t, "Maths", a.CourseName)
	assert.Equal(t, "Maths", b.CourseName)
}

func TestSpecializeAfterCloseFails(t *testing.T) {
	tmpl := BuildTemplate(model.Course{}, model.Assignment{Name: "hw1"}, 0, LeadTime{}, testSpec())

	notification, err := tmpl.Specialize(model.User{ID: 1})
	require.NoError(t, err)

	tmpl.Close()

	_, err = tmpl.Specialize(model.User{ID: 2})
	assert.Error(t, err)

	// 已生成的通知不受 Close 影响
	assert.Equal(t, int64(1), notification.To.ID)
}
