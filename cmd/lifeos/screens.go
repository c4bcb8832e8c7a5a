package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"lifeos/internal/budget"
	"lifeos/internal/guard"
	"lifeos/internal/models"
	"lifeos/internal/pages"
)

func (a *app) dashboard() error {
	if err := a.enter(guard.RouteHome); err != nil {
		return err
	}
	dash := pages.NewDashboard(a.client, a.sess)
	defer dash.Close()
	if err := dash.Mount(); err != nil {
		return err
	}
	view, ok := dash.View()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	fmt.Fprintf(a.stdout, "%s, %s!\n\n", view.Greeting, view.Name)
	printOpenTasks(a.stdout, "Work", view.WorkTasks)
	printOpenTasks(a.stdout, "Personal", view.PersonalTasks)
	fmt.Fprintln(a.stdout)
	return printSummary(a.stdout, view.Budget, a.currency())
}

func printOpenTasks(w io.Writer, label string, tasks []models.Task) {
	fmt.Fprintf(w, "%s tasks:\n", label)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  nothing open")
		return
	}
	for _, t := range tasks {
		fmt.Fprintf(w, "  [%d] %s\n", t.ID, t.Title)
	}
}

func printSummary(out io.Writer, s budget.Summary, currency string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, src := range s.Income {
		fmt.Fprintf(w, "%s\t%s %s\n", src.Source, money(src.Amount), currency)
	}
	fmt.Fprintf(w, "Total income\t%s %s\n", money(s.TotalIncome), currency)
	fmt.Fprintf(w, "Fixed expenses\t%s %s\n", money(s.TotalFixed), currency)
	fmt.Fprintf(w, "Variable expenses\t%s %s\n", money(s.TotalVariable), currency)
	fmt.Fprintf(w, "Savings\t%s %s\n", money(s.Savings), currency)
	fmt.Fprintf(w, "Remaining\t%d%%\n", s.RemainingPercent)
	if err := w.Flush(); err != nil {
		return err
	}
	if s.Low {
		fmt.Fprintln(out, "Warning: less than 20% of your income is left.")
	}
	if len(s.TopExpenses) > 0 {
		fmt.Fprintln(out, "Top expenses:")
		for _, e := range s.TopExpenses {
			fmt.Fprintf(out, "  %s: %s %s\n", e.Name, money(e.Amount), currency)
		}
	}
	return nil
}

func (a *app) currency() string {
	if user := a.sess.User(); user != nil && user.Currency != "" {
		return user.Currency
	}
	return models.DefaultCurrency
}

func (a *app) showBudget() error {
	if err := a.enter(guard.RouteEditBudget); err != nil {
		return err
	}
	finances := pages.NewFinances(a.client, a.sess)
	defer finances.Close()
	if err := finances.Mount(); err != nil {
		return err
	}
	summary, err := summarizeFinances(finances)
	if err != nil {
		return err
	}
	return printSummary(a.stdout, summary, a.currency())
}

// summarizeFinances computes the budget of a mounted finances page. The page
// has no user when the session lost its cached profile after the route check.
func summarizeFinances(finances *pages.Finances) (budget.Summary, error) {
	user := finances.User()
	if user == nil {
		return budget.Summary{}, errors.New("not logged in")
	}
	return budget.Summarize(user.MonthlyIncome, user.FixedExpenses, finances.Expenses()), nil
}

func (a *app) tasks(args []string) error {
	sub, rest := subcommand(args, "list")
	if err := a.enter(guard.RouteTasks); err != nil {
		return err
	}
	page := pages.NewTasks(a.client, a.sess)
	defer page.Close()
	if err := page.Mount(); err != nil {
		return err
	}

	switch sub {
	case "list":
	case "add":
		fs := a.newFlagSet("tasks add")
		taskType := fs.String("type", string(models.TaskTypePersonal), "work or personal")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := page.Add(strings.Join(fs.Args(), " "), models.TaskType(*taskType)); err != nil {
			return err
		}
	case "done":
		id, err := parseID(rest, "task")
		if err != nil {
			return err
		}
		task, ok := page.Find(id)
		if !ok {
			return fmt.Errorf("no task with id %d", id)
		}
		if err := page.Toggle(task); err != nil {
			return err
		}
	case "rm":
		id, err := parseID(rest, "task")
		if err != nil {
			return err
		}
		if err := page.Delete(id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown tasks command %q", sub)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDONE\tTITLE")
	for _, t := range page.Items() {
		done := " "
		if t.Done {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Type, done, t.Title)
	}
	return w.Flush()
}

func (a *app) finances(args []string) error {
	sub, rest := subcommand(args, "list")
	if err := a.enter(guard.RouteFinances); err != nil {
		return err
	}
	page := pages.NewFinances(a.client, a.sess)
	defer page.Close()
	if err := page.Mount(); err != nil {
		return err
	}

	switch sub {
	case "list":
	case "add":
		form, err := a.financeForm("finances add", rest, models.FinanceTypeIncome)
		if err != nil {
			return err
		}
		if err := page.Add(form); err != nil {
			return err
		}
	case "rm":
		id, err := parseID(rest, "entry")
		if err != nil {
			return err
		}
		if err := page.Delete(id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown finances command %q", sub)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCATEGORY\tAMOUNT\tNOTE")
	for _, e := range page.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Type, e.Category, money(e.Amount), e.Note)
	}
	return w.Flush()
}

func (a *app) financeForm(name string, args []string, def models.FinanceType) (pages.FinanceForm, error) {
	fs := a.newFlagSet(name)
	entryType := fs.String("type", string(def), "income or expense")
	amount := fs.String("amount", "", "Amount")
	category := fs.String("category", "", "Category, or \"other\" with -custom")
	custom := fs.String("custom", "", "Custom category when -category is other")
	note := fs.String("note", "", "Note")
	if err := fs.Parse(args); err != nil {
		return pages.FinanceForm{}, err
	}
	return pages.FinanceForm{
		Type:           models.FinanceType(*entryType),
		Amount:         *amount,
		Category:       *category,
		CustomCategory: *custom,
		Note:           *note,
	}, nil
}

func (a *app) logActivity(args []string) error {
	form, err := a.financeForm("log", args, models.FinanceTypeExpense)
	if err != nil {
		return err
	}
	if err := a.enter(guard.RouteLogExpense); err != nil {
		return err
	}
	entry, err := pages.NewActivityLogger(a.client, a.sess).Log(a.ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged %s %s %s (%s).\n", entry.Type, money(entry.Amount), a.currency(), entry.Category)
	return nil
}

func (a *app) resources(args []string) error {
	sub, rest := subcommand(args, "list")
	if err := a.enter(guard.RouteResources); err != nil {
		return err
	}
	page := pages.NewResources(a.client, a.sess)
	defer page.Close()
	if err := page.Mount(); err != nil {
		return err
	}

	switch sub {
	case "list":
	case "add":
		fs := a.newFlagSet("resources add")
		resType := fs.String("type", string(models.ResourceTypeArticle), "article, book or tool")
		link := fs.String("url", "", "Link to the resource")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := page.Add(strings.Join(fs.Args(), " "), *link, models.ResourceType(*resType)); err != nil {
			return err
		}
	case "status":
		id, err := parseID(rest, "resource")
		if err != nil {
			return err
		}
		if len(rest) < 2 {
			return fmt.Errorf("missing status: one of to_read, reading, done")
		}
		res, ok := page.Find(id)
		if !ok {
			return fmt.Errorf("no resource with id %d", id)
		}
		if err := page.UpdateStatus(res, models.ResourceStatus(rest[1])); err != nil {
			return err
		}
	case "rm":
		id, err := parseID(rest, "resource")
		if err != nil {
			return err
		}
		if err := page.Delete(id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown resources command %q", sub)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSTATUS\tLABEL\tURL")
	for _, r := range page.Tracked() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Type, r.Status, r.Label, r.URL)
	}
	return w.Flush()
}

func (a *app) planner(args []string) error {
	sub, rest := subcommand(args, "show")
	if err := a.enter(guard.RoutePlanner); err != nil {
		return err
	}
	page := pages.NewPlanner(a.client, a.sess)
	defer page.Close()
	if err := page.Mount(); err != nil {
		return err
	}

	switch sub {
	case "show":
	case "save":
		if len(rest) == 0 {
			return fmt.Errorf("missing day: one of %s", strings.Join(models.Weekdays, ", "))
		}
		if err := page.Save(rest[0], strings.Join(rest[1:], " ")); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown planner command %q", sub)
	}

	plans := page.Plans()
	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	for _, day := range models.Weekdays {
		fmt.Fprintf(w, "%s\t%s\n", day, plans[day])
	}
	return w.Flush()
}
