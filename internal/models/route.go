package models

// Route names the screen the presentation layer should show.
type Route string

const (
	RouteLogin        Route = "Login"
	RouteHome         Route = "Home"
	RouteOrderDetails Route = "OrderDetails"
)
