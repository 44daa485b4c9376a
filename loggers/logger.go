package loggers

import "github.com/sirupsen/logrus"

// New builds the application logger. Unknown level strings fall back to
// debug rather than failing startup.
func New(level string) *logrus.Logger {
	log := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.DebugLevel
	}
	log.SetLevel(parsed)

	return log
}
