package pages

import (
	"context"
	"strings"

	"lifeos/internal/apiclient"
	"lifeos/internal/models"
	"lifeos/internal/session"
)

// Resources is the reading list screen.
type Resources struct {
	*Page[models.Resource]
	client *apiclient.Client
}

// NewResources creates the reading list screen.
func NewResources(client *apiclient.Client, sess *session.Session) *Resources {
	return &Resources{Page: NewPage(sess, client.ListResources), client: client}
}

// Mount loads the user's resources.
func (r *Resources) Mount() error {
	return fail("Failed to load resources.", r.Page.Mount())
}

// Add tracks a new resource as to_read. Label and URL are required; an empty
// type means article.
func (r *Resources) Add(label, url string, resourceType models.ResourceType) error {
	label, url = strings.TrimSpace(label), strings.TrimSpace(url)
	if label == "" || url == "" {
		return missing("Label and URL are required")
	}
	if resourceType == "" {
		resourceType = models.ResourceTypeArticle
	}
	switch resourceType {
	case models.ResourceTypeArticle, models.ResourceTypeBook, models.ResourceTypeTool:
	default:
		return missing("Type must be article, book or tool")
	}

	err := r.Mutate(func(ctx context.Context, userID uint) error {
		_, err := r.client.CreateResource(ctx, models.ResourceCreate{
			UserID: userID,
			Label:  label,
			Type:   resourceType,
			URL:    url,
			Status: models.ResourceStatusToRead,
		})
		return err
	})
	return fail("Failed to add resource.", err)
}

// UpdateStatus moves res to status, sending the rest of it unchanged.
func (r *Resources) UpdateStatus(res models.Resource, status models.ResourceStatus) error {
	if !isReadingStatus(status) {
		return missing("Status must be to_read, reading or done")
	}
	update := models.UpdateFromResource(res)
	update.Status = status

	err := r.Mutate(func(ctx context.Context, _ uint) error {
		_, err := r.client.UpdateResource(ctx, res.ID, update)
		return err
	})
	return fail("Failed to update resource.", err)
}

// Delete removes a resource.
func (r *Resources) Delete(id uint) error {
	err := r.Mutate(func(ctx context.Context, _ uint) error {
		return r.client.DeleteResource(ctx, id)
	})
	return fail("Failed to delete resource.", err)
}

// Find returns the resource with id from the current list.
func (r *Resources) Find(id uint) (models.Resource, bool) {
	for _, res := range r.Items() {
		if res.ID == id {
			return res, true
		}
	}
	return models.Resource{}, false
}

// Tracked returns the resources that are not planner entries.
func (r *Resources) Tracked() []models.Resource {
	items := r.Items()
	out := make([]models.Resource, 0, len(items))
	for _, res := range items {
		if !res.IsPlanner() {
			out = append(out, res)
		}
	}
	return out
}

func isReadingStatus(status models.ResourceStatus) bool {
	for _, s := range models.ReadingStatuses {
		if s == status {
			return true
		}
	}
	return false
}
