package reminder

import (
	"fmt"
	"strings"
	"time"

	"AssignReminders/internal/model"
	"AssignReminders/utils"
)

// Template holds the per-event notification content. It is built once
// per matched event and specialized for each recipient, then closed
// when the event has been fully dispatched. Specializing a closed
// template is a programming error and fails loudly.
type Template struct {
	CourseName string
	AssignName string
	DueAt      string
	AheadLabel string
	Sender     string

	closed bool
}

// Notification is a template bound to one recipient.
type Notification struct {
	To model.User

	CourseName string
	AssignName string
	DueAt      string
	AheadLabel string
	Sender     string
}

// TemplateSpec carries the inputs of BuildTemplate that come from
// configuration.
type TemplateSpec struct {
	Sender     string
	DateFormat string
	Location   *time.Location
}

// BuildTemplate renders the shared part of an event's notifications.
// The assignment name is truncated at the first whitespace so template
// fields stay within the push channel's length limits.
func BuildTemplate(course model.Course, assignment model.Assignment, timeStart int64, lead LeadTime, spec TemplateSpec) *Template {
	return &Template{
		CourseName: course.FullName,
		AssignName: firstToken(assignment.Name),
		DueAt:      utils.FormatEpoch(timeStart, spec.DateFormat, spec.Location),
		AheadLabel: lead.Label,
		Sender:     spec.Sender,
	}
}

// Specialize binds the template to a recipient. The shared fields are
// copied, so later Close calls do not touch notifications already
// produced.
func (t *Template) Specialize(to model.User) (*Notification, error) {
	if t.closed {
		return nil, fmt.Errorf("template already closed")
	}
	return &Notification{
		To:         to,
		CourseName: t.CourseName,
		AssignName: t.AssignName,
		DueAt:      t.DueAt,
		AheadLabel: t.AheadLabel,
		Sender:     t.Sender,
	}, nil
}

// Close marks the template as spent.
func (t *Template) Close() {
	t.closed = true
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
