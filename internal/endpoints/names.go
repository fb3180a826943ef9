package endpoints

// Registered endpoint names.
const (
	AppVersion   = "app.version"
	AuthRegister = "auth.register"
	AuthLogin    = "auth.login"
	UsersMe      = "users.me"
	UsersList    = "users.list"
	UsersSetRole = "users.setRole"
	UsersDisable = "users.disable"

	// UsersDelete is registered without a handler; it answers 404, or 501
	// when the dispatcher runs with APP_NOT_IMPLEMENTED.
	UsersDelete = "users.delete"
)
