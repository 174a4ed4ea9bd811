package command

import (
	"context"
	"time"

	"github.com/Devansht420/Apps.Asana.Integration/internal/format"
)

// Asana timestamps are fixed-width UTC with millisecond precision, so
// the feed cutoff must use the same layout for string comparison.
const asanaTimeLayout = "2006-01-02T15:04:05.000Z"

func (h *Handler) projects(ctx context.Context, inv Invocation) error {
	token, ok := h.requireToken(ctx, inv)
	if !ok {
		return nil
	}
	workspaceGID, ok := h.requireWorkspace(ctx, inv)
	if !ok {
		return nil
	}

	projects, err := h.API.Projects(ctx, token, workspaceGID)
	if err != nil {
		h.Log.WithError(err).Error("Failed to retrieve projects")
		h.notify(ctx, inv, "Failed to retrieve projects from Asana.")
		return nil
	}
	if len(projects) == 0 {
		h.notify(ctx, inv, "No projects found in your workspace.")
		return nil
	}

	var groups []format.ProjectTasks
	for _, project := range projects {
		tasks, err := h.API.ProjectTasks(ctx, token, project.GID)
		if err != nil {
			// One failing project must not sink the whole listing
			h.Log.WithError(err).WithField("project", project.Name).Error("Failed to retrieve tasks for project")
			continue
		}
		groups = append(groups, format.ProjectTasks{Project: project, Tasks: tasks})
	}

	message := "*Projects In Your Workspace With Their Tasks -*\n\n" + format.Projects(groups)
	h.notify(ctx, inv, message)
	return nil
}

func (h *Handler) myTasks(ctx context.Context, inv Invocation) error {
	token, ok := h.requireToken(ctx, inv)
	if !ok {
		return nil
	}
	workspaceGID, ok := h.requireWorkspace(ctx, inv)
	if !ok {
		return nil
	}

	me, err := h.API.Me(ctx, token)
	if err != nil {
		h.Log.WithError(err).Error("Failed to retrieve user info")
		h.notify(ctx, inv, "Failed to retrieve Asana user info. Please ensure you are logged in.")
		return nil
	}

	listGID, err := h.API.UserTaskListGID(ctx, token, me.GID, workspaceGID)
	if err != nil {
		h.Log.WithError(err).Error("Failed to retrieve user task list")
		h.notify(ctx, inv, "Failed to retrieve your Asana task list.")
		return nil
	}

	tasks, err := h.API.UserTaskListTasks(ctx, token, listGID)
	if err != nil {
		h.Log.WithError(err).Error("Failed to retrieve tasks")
		h.notify(ctx, inv, "Failed to retrieve tasks from your Asana My Tasks list.")
		return nil
	}
	if len(tasks) == 0 {
		h.notify(ctx, inv, "No tasks found in your Asana My Tasks list.")
		return nil
	}

	message := "*Your Asana My Tasks List* -\n" + format.Tasks(tasks)
	h.notify(ctx, inv, message)
	return nil
}

func (h *Handler) feed(ctx context.Context, inv Invocation) error {
	token, ok := h.requireToken(ctx, inv)
	if !ok {
		return nil
	}
	workspaceGID, ok := h.requireWorkspace(ctx, inv)
	if !ok {
		return nil
	}

	cutoff := h.now().UTC().Add(-24 * time.Hour).Format(asanaTimeLayout)

	projects, err := h.API.Projects(ctx, token, workspaceGID)
	if err != nil {
		h.Log.WithError(err).Error("Failed to retrieve projects")
		h.notify(ctx, inv, "Failed to retrieve projects from Asana.")
		return nil
	}
	if len(projects) == 0 {
		h.notify(ctx, inv, "No projects found in your workspace.")
		return nil
	}

	var groups []format.ProjectTasks
	for _, project := range projects {
		tasks, err := h.API.ProjectTasks(ctx, token, project.GID)
		if err != nil {
			h.Log.WithError(err).WithField("project", project.Name).Error("Failed to retrieve tasks for project")
			continue
		}
		recent := format.FilterCreatedAfter(tasks, cutoff)
		if len(recent) == 0 {
			continue
		}
		groups = append(groups, format.ProjectTasks{Project: project, Tasks: recent})
	}

	message := format.Projects(groups)
	if message == "" {
		h.notify(ctx, inv, "No tasks were created in the last 24 hours in your workspace.")
		return nil
	}

	h.notify(ctx, inv, message)
	return nil
}
