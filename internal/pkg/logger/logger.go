package logger

// Logger is the leveled logger shared by the cipher layer and the chat session.
// It never terminates the process; exit policy belongs to the command boundary.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}
