package core

// Logger is implemented by every logging backend of the app.
//
// args may hold an error, a map[string]interface{} of extra fields and an Actor.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor identifies who triggered the logged operation.
type Actor struct {
	ID       string
	Username string
	Email    string
}
