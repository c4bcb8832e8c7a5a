package pages

import (
	"errors"
	"time"

	"lifeos/internal/apiclient"
	"lifeos/internal/budget"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// DashboardTaskLimit caps each task list on the dashboard.
const DashboardTaskLimit = 3

// Greeting returns the salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// DashboardView is everything the dashboard renders.
type DashboardView struct {
	Greeting      string
	Name          string
	WorkTasks     []models.Task
	PersonalTasks []models.Task
	Budget        budget.Summary
}

// Dashboard combines the open tasks with the month's budget.
type Dashboard struct {
	sess     *session.Session
	tasks    *Page[models.Task]
	finances *Page[models.FinanceEntry]
	now      func() time.Time
}

// NewDashboard creates the dashboard screen.
func NewDashboard(client *apiclient.Client, sess *session.Session) *Dashboard {
	return &Dashboard{
		sess:     sess,
		tasks:    NewPage(sess, client.ListTasks),
		finances: NewPage(sess, client.ListFinances),
		now:      time.Now,
	}
}

// Mount loads tasks and finances. Both are attempted even if one fails.
func (d *Dashboard) Mount() error {
	return fail("Failed to load dashboard.", errors.Join(d.tasks.Mount(), d.finances.Mount()))
}

// View computes the dashboard from the last loaded lists and the cached
// profile. It returns false when no user is logged in.
func (d *Dashboard) View() (DashboardView, bool) {
	user := d.tasks.User()
	if user == nil {
		return DashboardView{}, false
	}
	// The cached profile may have been replaced by the budget editor.
	if cached := d.sess.User(); cached != nil && cached.ID == user.ID {
		user = cached
	}

	tasks := d.tasks.Items()
	expenses := filterEntries(d.finances.Items(), models.FinanceTypeExpense)

	return DashboardView{
		Greeting:      Greeting(d.now().Hour()),
		Name:          user.DisplayName(),
		WorkTasks:     openTasks(tasks, models.TaskTypeWork, DashboardTaskLimit),
		PersonalTasks: openTasks(tasks, models.TaskTypePersonal, DashboardTaskLimit),
		Budget:        budget.Summarize(user.MonthlyIncome, user.FixedExpenses, expenses),
	}, true
}

// Close cancels both fetches.
func (d *Dashboard) Close() {
	d.tasks.Close()
	d.finances.Close()
}
