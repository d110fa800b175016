package models

// BadgeVariant is the closed set of badge styles a client may render.
type BadgeVariant string

const (
	BadgePrimary   BadgeVariant = "primary"
	BadgeSecondary BadgeVariant = "secondary"
	BadgeSuccess   BadgeVariant = "success"
	BadgeWarning   BadgeVariant = "warning"
	BadgeError     BadgeVariant = "error"
	BadgeNeutral   BadgeVariant = "neutral"
)
