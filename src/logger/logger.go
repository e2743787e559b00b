package logger

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	TextFormat = "text"
	JsonFormat = "json"
)

// Setup configures the package-level logrus logger. Diagnostics go to out, which keeps
// them apart from the menu written to stdout.
func Setup(level string, format string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger.Setup: invalid log level %q: %w", level, err)
	}

	log.SetLevel(lvl)
	log.SetOutput(out)

	switch format {
	case JsonFormat:
		log.SetFormatter(&log.JSONFormatter{})
	case TextFormat, "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("logger.Setup: unknown log format %q", format)
	}

	return nil
}

// SessionHook stamps every entry with the id of the running session.
type SessionHook struct {
	SessionID string
}

func (h *SessionHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *SessionHook) Fire(entry *log.Entry) error {
	entry.Data["session_id"] = h.SessionID
	return nil
}

func NewSessionID() string {
	return uuid.New().String()
}

func AttachSession(sessionID string) {
	log.AddHook(&SessionHook{SessionID: sessionID})
}
