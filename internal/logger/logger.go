package logger

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/blog-platform/backend/internal/config"
)

const serviceName = "blog-api"

// New builds the application logger from config. Output goes to stderr.
func New(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// Service returns an entry tagged with the service name and environment.
func Service(log *logrus.Logger, cfg *config.Config) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"service":        serviceName,
		"is_development": cfg.IsDevelopment(),
	})
}
