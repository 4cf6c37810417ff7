package core

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a user-visible toast.
type Notification struct {
	Title   string
	Message string
	Level   Level
}

// Notifier is any service that can surface notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

func Success(msg string) Notification {
	return Notification{Title: "Sucesso", Message: msg, Level: LevelSuccess}
}

func Failure(title, msg string) Notification {
	if title == "" {
		title = "Erro"
	}
	return Notification{Title: title, Message: msg, Level: LevelError}
}
