package google

import (
	calendar "google.golang.org/api/calendar/v3"
)

// DefaultOAuthScopes are the scopes requested during authorization.
// Creating events and listing upcoming ones both need full calendar access.
var DefaultOAuthScopes = []string{
	calendar.CalendarScope,
}
