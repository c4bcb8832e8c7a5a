package pages

import (
	"context"
	"strings"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// Tasks is the task manager screen.
type Tasks struct {
	*Page[models.Task]
	client *apiclient.Client
}

// NewTasks creates the task screen.
func NewTasks(client *apiclient.Client, sess *session.Session) *Tasks {
	return &Tasks{Page: NewPage(sess, client.ListTasks), client: client}
}

// Mount loads the user's tasks.
func (t *Tasks) Mount() error {
	return fail("Failed to load tasks.", t.Page.Mount())
}

// Add creates a task. A blank title is rejected before any call; an empty
// type means personal.
func (t *Tasks) Add(title string, taskType models.TaskType) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return missing("Task title is required")
	}
	if taskType == "" {
		taskType = models.TaskTypePersonal
	}
	if !taskType.Valid() {
		return missing("Task type must be work or personal")
	}

	err := t.Mutate(func(ctx context.Context, userID uint) error {
		_, err := t.client.CreateTask(ctx, models.TaskCreate{UserID: userID, Title: title, Type: taskType})
		return err
	})
	return fail("Failed to add task.", err)
}

// Toggle flips the done flag of task, sending the rest of it unchanged.
func (t *Tasks) Toggle(task models.Task) error {
	update := models.UpdateFromTask(task)
	update.Done = !task.Done

	err := t.Mutate(func(ctx context.Context, _ uint) error {
		_, err := t.client.UpdateTask(ctx, task.ID, update)
		return err
	})
	return fail("Failed to update task.", err)
}

// Delete removes a task.
func (t *Tasks) Delete(id uint) error {
	err := t.Mutate(func(ctx context.Context, _ uint) error {
		return t.client.DeleteTask(ctx, id)
	})
	return fail("Failed to delete task.", err)
}

// Find returns the task with id from the current list.
func (t *Tasks) Find(id uint) (models.Task, bool) {
	for _, task := range t.Items() {
		if task.ID == id {
			return task, true
		}
	}
	return models.Task{}, false
}

// ByType returns the tasks of one type, in list order.
func (t *Tasks) ByType(taskType models.TaskType) []models.Task {
	return filterTasks(t.Items(), func(task models.Task) bool { return task.Type == taskType })
}

// Open returns up to limit unfinished tasks of one type; limit <= 0 means all.
func (t *Tasks) Open(taskType models.TaskType, limit int) []models.Task {
	return openTasks(t.Items(), taskType, limit)
}

func openTasks(tasks []models.Task, taskType models.TaskType, limit int) []models.Task {
	open := filterTasks(tasks, func(task models.Task) bool { return task.Type == taskType && !task.Done })
	if limit > 0 && len(open) > limit {
		open = open[:limit]
	}
	return open
}

func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out
}
