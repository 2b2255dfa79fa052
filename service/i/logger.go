package i

// Logger is the leveled logger shared by services and adapters.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
