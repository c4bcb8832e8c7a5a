package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"lifeos/internal/guard"
	"lifeos/internal/models"
	"lifeos/internal/pages"
	"lifeos/internal/shell"
)

func (a *app) register(args []string) error {
	fs := a.newFlagSet("register")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when empty)")
	confirm := fs.String("confirm", "", "Password confirmation (prompted when empty)")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := a.credentials(*email, *password)
	if err != nil {
		return err
	}
	if creds.ConfirmPassword, err = a.password(*confirm, "Confirm password: "); err != nil {
		return err
	}
	creds.FirstName, creds.LastName = *first, *last

	screen, err := a.shell.Authenticate(a.ctx, shell.ModeRegister, creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Registered %s.\n", creds.Email)
	a.nextStep(screen)
	return nil
}

func (a *app) login(args []string) error {
	fs := a.newFlagSet("login")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := a.credentials(*email, *password)
	if err != nil {
		return err
	}
	screen, err := a.shell.Authenticate(a.ctx, shell.ModeLogin, creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s.\n", creds.Email)
	a.nextStep(screen)
	return nil
}

func (a *app) credentials(email, password string) (shell.Credentials, error) {
	var err error
	if email == "" {
		if email, err = a.prompt("Email: "); err != nil {
			return shell.Credentials{}, err
		}
	}
	if password, err = a.password(password, "Password: "); err != nil {
		return shell.Credentials{}, err
	}
	return shell.Credentials{Email: strings.TrimSpace(email), Password: password}, nil
}

func (a *app) nextStep(screen shell.Screen) {
	if screen == shell.ScreenSetup {
		fmt.Fprintln(a.stdout, "Next: complete your profile with `lifeos setup`.")
	}
}

func (a *app) logout() error {
	if err := a.shell.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged out.")
	return nil
}

func (a *app) whoami() error {
	a.shell.Start(a.ctx)
	user := a.shell.User()
	if user == nil {
		return errors.New("not logged in")
	}
	fmt.Fprintf(a.stdout, "%s <%s>\n", user.DisplayName(), user.Email)
	if !user.SetupComplete {
		fmt.Fprintln(a.stdout, "Profile incomplete.")
	}
	return nil
}

func (a *app) setup(args []string) error {
	fs := a.newFlagSet("setup")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	income := fs.Float64("income", 0, "Fixed monthly income")
	var sources, expenses multiFlag
	fs.Var(&sources, "source", "Income source as name=amount (repeatable)")
	fs.Var(&expenses, "expense", "Fixed expense as name=amount (repeatable)")
	currency := fs.String("currency", models.DefaultCurrency, "ISO 4217 currency code")
	dark := fs.Bool("dark", false, "Use dark mode")
	goal := fs.String("goal", "", "Monthly goal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.enter(guard.RouteSetup); err != nil {
		return err
	}

	firstName := *first
	if firstName == "" {
		var err error
		if firstName, err = a.prompt("First name: "); err != nil {
			return err
		}
	}
	monthly, err := parseIncome(*income, sources)
	if err != nil {
		return err
	}
	lines, err := expenseLines(expenses)
	if err != nil {
		return err
	}

	wizard := pages.NewSetupWizard(a.client, a.sess)
	if err := wizard.SetName(firstName, *last); err != nil {
		return err
	}
	if err := wizard.SetIncome(monthly); err != nil {
		return err
	}
	if err := wizard.SetExpenses(lines); err != nil {
		return err
	}
	if err := wizard.SetPreferences(*currency, *dark, *goal); err != nil {
		return err
	}
	if _, err := a.shell.CompleteSetup(a.ctx, wizard); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Welcome, %s! Your profile is ready.\n", a.shell.User().DisplayName())
	return nil
}

// parseIncome builds an income from a fixed amount or, when any are given,
// from name=amount sources.
func parseIncome(fixed float64, sources []string) (models.Income, error) {
	if len(sources) == 0 {
		return models.FixedIncome(fixed), nil
	}
	list := make([]models.IncomeSource, 0, len(sources))
	for _, s := range sources {
		name, amountText, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return models.Income{}, fmt.Errorf("invalid source %q: want name=amount", s)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountText), 64)
		if err != nil {
			return models.Income{}, fmt.Errorf("invalid amount in source %q", s)
		}
		list = append(list, models.IncomeSource{Source: strings.TrimSpace(name), Amount: amount})
	}
	return models.SourcesIncome(list), nil
}

func (a *app) profile(args []string) error {
	sub, rest := subcommand(args, "show")
	if err := a.enter(guard.RouteProfile); err != nil {
		return err
	}
	profile := pages.NewProfile(a.auth)

	switch sub {
	case "show":
		user, err := profile.Load(a.ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Email\t%s\n", user.Email)
		fmt.Fprintf(w, "Name\t%s\n", strings.TrimSpace(user.FirstName+" "+user.LastName))
		fmt.Fprintf(w, "Currency\t%s\n", user.Currency)
		fmt.Fprintf(w, "Dark mode\t%t\n", user.DarkMode)
		if user.Goal != "" {
			fmt.Fprintf(w, "Goal\t%s\n", user.Goal)
		}
		return w.Flush()

	case "passwd":
		fs := a.newFlagSet("profile passwd")
		current := fs.String("current", "", "Current password (prompted when empty)")
		next := fs.String("new", "", "New password (prompted when empty)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		cur, err := a.password(*current, "Current password: ")
		if err != nil {
			return err
		}
		nxt, err := a.password(*next, "New password: ")
		if err != nil {
			return err
		}
		if err := profile.ChangePassword(a.ctx, cur, nxt); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Password changed.")
		return nil

	case "delete":
		fs := a.newFlagSet("profile delete")
		yes := fs.Bool("yes", false, "Do not ask for confirmation")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if !*yes {
			answer, err := a.prompt("Delete your account and all its data? [y/N] ")
			if err != nil {
				return err
			}
			if !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Fprintln(a.stdout, "Aborted.")
				return nil
			}
		}
		if err := a.shell.DeleteAccount(a.ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Account deleted.")
		return nil
	}
	return fmt.Errorf("unknown profile command %q", sub)
}

func (a *app) budget(args []string) error {
	sub, rest := subcommand(args, "show")
	switch sub {
	case "show":
		return a.showBudget()
	case "edit":
		return a.editBudget(rest)
	}
	return fmt.Errorf("unknown budget command %q", sub)
}

func (a *app) editBudget(args []string) error {
	fs := a.newFlagSet("budget edit")
	income := fs.Float64("income", 0, "Fixed monthly income")
	var sources, expenses multiFlag
	fs.Var(&sources, "source", "Income source as name=amount (repeatable)")
	fs.Var(&expenses, "expense", "Fixed expense as name=amount (repeatable, replaces all)")
	currency := fs.String("currency", "", "ISO 4217 currency code")
	dark := fs.Bool("dark", false, "Use dark mode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.enter(guard.RouteEditBudget); err != nil {
		return err
	}

	editor := pages.NewBudgetEditor(a.client, a.sess)
	update, ok := editor.Current()
	if !ok {
		return errors.New("not logged in")
	}
	if isSet(fs, "income") || len(sources) > 0 {
		monthly, err := parseIncome(*income, sources)
		if err != nil {
			return err
		}
		update.MonthlyIncome = monthly
	}
	if len(expenses) > 0 {
		lines, err := expenseLines(expenses)
		if err != nil {
			return err
		}
		fixed, err := pages.FixedExpenses(lines)
		if err != nil {
			return err
		}
		update.FixedExpenses = fixed
	}
	if *currency != "" {
		update.Currency = strings.ToUpper(*currency)
	}
	if isSet(fs, "dark") {
		update.DarkMode = *dark
	}

	if _, err := editor.Save(a.ctx, update); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Budget updated.")
	return nil
}

// subcommand splits off the first argument, or returns def when it is absent
// or a flag.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}
