package models

// IssueCategory enum
type IssueCategory string

const (
	Pothole        IssueCategory = "pothole"
	Garbage        IssueCategory = "garbage"
	Water          IssueCategory = "water"
	Infrastructure IssueCategory = "infrastructure"
	Lighting       IssueCategory = "lighting"
	Traffic        IssueCategory = "traffic"
)

// Categories lists every known category in display order.
var Categories = []IssueCategory{Pothole, Garbage, Water, Infrastructure, Lighting, Traffic}

// Valid reports whether c belongs to the closed category set.
func (c IssueCategory) Valid() bool {
	switch c {
	case Pothole, Garbage, Water, Infrastructure, Lighting, Traffic:
		return true
	}
	return false
}

// Label returns the display name used by the category filter.
func (c IssueCategory) Label() string {
	switch c {
	case Pothole:
		return "Potholes"
	case Garbage:
		return "Garbage"
	case Water:
		return "Water Issues"
	case Infrastructure:
		return "Infrastructure"
	case Lighting:
		return "Lighting"
	case Traffic:
		return "Traffic"
	default:
		return "Other"
	}
}

// Variant returns the badge variant for the category. Unknown categories get
// the neutral badge.
func (c IssueCategory) Variant() BadgeVariant {
	switch c {
	case Garbage:
		return BadgeSuccess
	case Water:
		return BadgePrimary
	case Infrastructure:
		return BadgeSecondary
	case Lighting:
		return BadgeWarning
	case Traffic:
		return BadgeError
	default:
		return BadgeNeutral
	}
}

// IssueStatus enum
type IssueStatus string

const (
	Open       IssueStatus = "open"
	InProgress IssueStatus = "in-progress"
	Resolved   IssueStatus = "resolved"
)

// Statuses lists every known status in display order.
var Statuses = []IssueStatus{Open, InProgress, Resolved}

func (s IssueStatus) Valid() bool {
	switch s {
	case Open, InProgress, Resolved:
		return true
	}
	return false
}

func (s IssueStatus) Label() string {
	switch s {
	case Open:
		return "Open"
	case InProgress:
		return "In Progress"
	case Resolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// Variant returns the badge variant for the status. Unknown statuses fall
// through to neutral rather than failing.
func (s IssueStatus) Variant() BadgeVariant {
	switch s {
	case Open:
		return BadgeError
	case InProgress:
		return BadgeWarning
	case Resolved:
		return BadgeSuccess
	default:
		return BadgeNeutral
	}
}

// Location is a coordinate pair plus the address shown to users.
type Location struct {
	Lat     float64 `bson:"lat" json:"lat" yaml:"lat"`
	Lng     float64 `bson:"lng" json:"lng" yaml:"lng"`
	Address string  `bson:"address" json:"address" yaml:"address"`
}

// Issue represents a civic issue reported by a user
type Issue struct {
	ID          string        `bson:"_id" json:"id" yaml:"id"`
	Title       string        `bson:"title" json:"title" yaml:"title"`
	Description string        `bson:"description" json:"description" yaml:"description"`
	ImageURL    *string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Location    Location      `bson:"location" json:"location" yaml:"location"`
	Category    IssueCategory `bson:"category" json:"category" yaml:"category"`
	Status      IssueStatus   `bson:"status" json:"status" yaml:"status"`
	UserID      string        `bson:"userId" json:"userId" yaml:"userId"`
	UserName    string        `bson:"userName" json:"userName" yaml:"userName"`
	UserAvatar  *string       `bson:"userAvatar,omitempty" json:"userAvatar,omitempty" yaml:"userAvatar,omitempty"`
	Likes       int           `bson:"likes" json:"likes" yaml:"likes"`
	Comments    int           `bson:"comments" json:"comments" yaml:"comments"`
	CreatedAt   string        `bson:"createdAt" json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string        `bson:"updatedAt" json:"updatedAt" yaml:"updatedAt"`
	Tags        []string      `bson:"tags" json:"tags" yaml:"tags"`
}
