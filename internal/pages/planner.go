package pages

import (
	"context"
	"fmt"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// Planner is the weekly plan screen.
type Planner struct {
	*Page[models.Resource]
	client *apiclient.Client
}

// NewPlanner creates the weekly plan screen.
func NewPlanner(client *apiclient.Client, sess *session.Session) *Planner {
	return &Planner{Page: NewPage(sess, client.ListPlans), client: client}
}

// Mount loads the user's planner entries.
func (p *Planner) Mount() error {
	return fail("Failed to load planner.", p.Page.Mount())
}

// Plans maps each planned weekday to its note.
func (p *Planner) Plans() map[string]string {
	plans := make(map[string]string)
	for _, entry := range p.Items() {
		if entry.IsPlanner() {
			plans[entry.Category] = entry.Note
		}
	}
	return plans
}

// Save stores note as the plan of day. Saving a day again replaces its note.
func (p *Planner) Save(day, note string) error {
	if !models.IsWeekday(day) {
		return missing(fmt.Sprintf("Unknown day %q", day))
	}

	err := p.Mutate(func(ctx context.Context, userID uint) error {
		_, err := p.client.UpsertPlan(ctx, userID, day, note)
		return err
	})
	return fail(fmt.Sprintf("Error saving %s.", day), err)
}
