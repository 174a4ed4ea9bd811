// Package format renders Asana task records into chat markdown.
package format

import (
	"fmt"
	"strings"

	"github.com/Devansht420/Apps.Asana.Integration/internal/asana"
)

// ProjectTasks pairs a project with its fetched tasks
type ProjectTasks struct {
	Project asana.Project
	Tasks   []asana.Task
}

// CustomFieldValue extracts the value of a custom field by name.
// The match is case-insensitive. For an enum field the label is the
// selected option's name; otherwise the text value, falling back to
// the display value. A missing field yields "" and is not an error.
func CustomFieldValue(fields []asana.CustomField, name string) string {
	for _, field := range fields {
		if field.Name == "" || !strings.EqualFold(field.Name, name) {
			continue
		}
		if field.Type == "enum" && field.EnumValue != nil && field.EnumValue.Name != "" {
			return field.EnumValue.Name
		}
		if field.TextValue != "" {
			return field.TextValue
		}
		return field.DisplayValue
	}
	return ""
}

// TaskLine renders one task as a single bulleted line with a linked
// name. Assignee and Due Date always appear, with "Unassigned" and
// "No due date" placeholders; Status and Priority only when present.
func TaskLine(task asana.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "• [%s](%s)", task.Name, task.PermalinkURL)

	assignee := "Unassigned"
	if task.Assignee != nil && task.Assignee.Name != "" {
		assignee = task.Assignee.Name
	}
	fmt.Fprintf(&b, " *Assignee*- %s", assignee)

	if status := CustomFieldValue(task.CustomFields, "Status"); status != "" {
		fmt.Fprintf(&b, " *Status*- %s", status)
	}
	if priority := CustomFieldValue(task.CustomFields, "Priority"); priority != "" {
		fmt.Fprintf(&b, " *Priority*- %s", priority)
	}

	dueDate := task.DueOn
	if dueDate == "" {
		dueDate = "No due date"
	}
	fmt.Fprintf(&b, " *Due Date*- %s", dueDate)

	b.WriteString("\n")
	return b.String()
}

// Tasks renders a flat task list, one line per task
func Tasks(tasks []asana.Task) string {
	var b strings.Builder
	for _, task := range tasks {
		b.WriteString(TaskLine(task))
	}
	return b.String()
}

// Projects renders grouped tasks with a bold project-name header per
// block and a blank line between projects. Projects with no tasks are
// skipped entirely.
func Projects(groups []ProjectTasks) string {
	var b strings.Builder
	for _, group := range groups {
		if len(group.Tasks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "*%s* -\n", group.Project.Name)
		b.WriteString(Tasks(group.Tasks))
		b.WriteString("\n")
	}
	return b.String()
}

// FilterCreatedAfter keeps tasks created strictly after cutoff. Both
// operands are fixed-width UTC ISO-8601 strings, so lexicographic
// comparison orders them correctly; a task exactly at the cutoff is
// excluded.
func FilterCreatedAfter(tasks []asana.Task, cutoff string) []asana.Task {
	var recent []asana.Task
	for _, task := range tasks {
		if task.CreatedAt != "" && task.CreatedAt > cutoff {
			recent = append(recent, task)
		}
	}
	return recent
}
