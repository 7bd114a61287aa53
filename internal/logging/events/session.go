package events

import "github.com/jask/rushcargo/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Login(username, role string) {
	logging.L().Info("session.login", "user", username, "role", role)
}

func (SessionTracer) LoginFailed(username string) {
	logging.L().Info("session.login.failed", "user", username)
}

func (SessionTracer) Logout(username string) {
	logging.L().Info("session.logout", "user", username)
}

func (SessionTracer) Message(text string) {
	logging.L().Info("session.message", "text", text)
}

func (SessionTracer) Quit() {
	logging.L().Info("session.quit")
}

func (SessionTracer) Rejected(err error) {
	logging.L().Info("session.rejected", "error", err)
}

func (SessionTracer) Failed(err error) {
	logging.L().Warn("session.failed", "error", err)
}
