package pages

import (
	"context"
	"strings"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
	"lifeos/internal/validator"
)

// SetupStep is a step of the setup wizard.
type SetupStep int

const (
	StepName SetupStep = iota
	StepIncome
	StepExpenses
	StepPreferences
	StepReview
)

var stepNames = map[SetupStep]string{
	StepName:        "name",
	StepIncome:      "income",
	StepExpenses:    "fixed expenses",
	StepPreferences: "preferences",
	StepReview:      "review",
}

func (s SetupStep) String() string {
	return stepNames[s]
}

// SetupWizard collects the profile in steps and submits it in one call.
// Each step checks its own fields before the wizard moves on.
type SetupWizard struct {
	client *apiclient.Client
	sess   *session.Session

	step  SetupStep
	draft models.SetupRequest
}

// NewSetupWizard creates a wizard at its first step.
func NewSetupWizard(client *apiclient.Client, sess *session.Session) *SetupWizard {
	return &SetupWizard{
		client: client,
		sess:   sess,
		draft: models.SetupRequest{
			Currency:      models.DefaultCurrency,
			FixedExpenses: models.FixedExpenses{},
		},
	}
}

// Step returns the current step.
func (w *SetupWizard) Step() SetupStep {
	return w.step
}

// Draft returns the profile collected so far.
func (w *SetupWizard) Draft() models.SetupRequest {
	return w.draft
}

// Back returns to the previous step, keeping what was entered.
func (w *SetupWizard) Back() {
	if w.step > StepName {
		w.step--
	}
}

func (w *SetupWizard) at(step SetupStep) error {
	if w.step != step {
		return missing("Finish the " + w.step.String() + " step first")
	}
	return nil
}

// SetName fills in the name step. The first name is required.
func (w *SetupWizard) SetName(first, last string) error {
	if err := w.at(StepName); err != nil {
		return err
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" {
		return missing("Please fill in required fields.")
	}
	w.draft.FirstName, w.draft.LastName = first, last
	w.step = StepIncome
	return nil
}

// SetIncome fills in the income step. The income must be positive.
func (w *SetupWizard) SetIncome(income models.Income) error {
	if err := w.at(StepIncome); err != nil {
		return err
	}
	if income.Total() <= 0 {
		return missing("Please fill in required fields.")
	}
	w.draft.MonthlyIncome = income
	w.step = StepExpenses
	return nil
}

// SetExpenses fills in the fixed expenses step. Blank rows are dropped; the
// step may be left empty.
func (w *SetupWizard) SetExpenses(lines []ExpenseLine) error {
	if err := w.at(StepExpenses); err != nil {
		return err
	}
	fixed, err := FixedExpenses(lines)
	if err != nil {
		return err
	}
	w.draft.FixedExpenses = fixed
	w.step = StepPreferences
	return nil
}

// SetPreferences fills in currency, dark mode and the optional goal. An
// empty currency keeps the default.
func (w *SetupWizard) SetPreferences(currency string, darkMode bool, goal string) error {
	if err := w.at(StepPreferences); err != nil {
		return err
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	draft := w.draft
	draft.Currency, draft.DarkMode, draft.Goal = currency, darkMode, strings.TrimSpace(goal)
	if err := validator.Check(draft); err != nil {
		return err
	}
	w.draft = draft
	w.step = StepReview
	return nil
}

// Submit completes setup on the server and caches the returned profile.
func (w *SetupWizard) Submit(ctx context.Context) (*models.User, error) {
	if err := w.at(StepReview); err != nil {
		return nil, err
	}
	if !w.sess.Authenticated() {
		return nil, fail("Failed to create user.", errNoUser)
	}

	user, err := w.client.CompleteSetup(ctx, w.draft)
	if err != nil {
		return nil, fail("Failed to create user.", err)
	}
	if err := w.sess.SaveUser(user); err != nil {
		return nil, fail("Failed to create user.", err)
	}
	return user, nil
}
