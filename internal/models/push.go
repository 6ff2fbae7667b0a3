package models

// PushOrigin tells how a push message reached the app.
type PushOrigin string

const (
	// PushOpenedFromBackground: the vendor opened a notification while the app was backgrounded.
	PushOpenedFromBackground PushOrigin = "background"
	// PushOpenedFromTerminated: the app was started from a notification.
	PushOpenedFromTerminated PushOrigin = "terminated"
	PushForeground           PushOrigin = "foreground"
)

// PushMessage is a notification delivered by the push provider.
type PushMessage struct {
	Origin PushOrigin        `json:"origin"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}
