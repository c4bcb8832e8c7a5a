package models

// ResourceType classifies a tracked item
type ResourceType string

const (
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeBook    ResourceType = "book"
	ResourceTypeTool    ResourceType = "tool"
	ResourceTypePlanner ResourceType = "planner"
)

// ResourceStatus is the reading progress of a resource
type ResourceStatus string

const (
	ResourceStatusToRead  ResourceStatus = "to_read"
	ResourceStatusReading ResourceStatus = "reading"
	ResourceStatusDone    ResourceStatus = "done"
	ResourceStatusActive  ResourceStatus = "active" // planner entries
)

// ReadingStatuses lists the statuses a user can move a resource through.
var ReadingStatuses = []ResourceStatus{ResourceStatusToRead, ResourceStatusReading, ResourceStatusDone}

// Weekdays are the planner keys, in display order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// IsWeekday reports whether day is one of Weekdays.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Resource is a tracked article, book or tool. Planner entries are stored as
// resources of type "planner" with the weekday in Category and the plan text
// in Note; a user has at most one planner entry per weekday.
type Resource struct {
	Base
	UserID   uint           `gorm:"index;not null;uniqueIndex:idx_resources_planner_day,where:type = 'planner'" json:"user_id"`
	Label    string         `json:"label"`
	Type     ResourceType   `gorm:"not null;default:article" json:"type"`
	URL      string         `json:"url"`
	Status   ResourceStatus `gorm:"not null;default:to_read" json:"status"`
	Category string         `gorm:"index;uniqueIndex:idx_resources_planner_day,where:type = 'planner'" json:"category,omitempty"`
	Note     string         `json:"note,omitempty"`
}

// IsPlanner reports whether r is a planner entry.
func (r *Resource) IsPlanner() bool {
	return r.Type == ResourceTypePlanner
}
