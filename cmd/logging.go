package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	logFieldTimeStamp = "time"
	logFieldLevel     = "level"
	logFieldMessage   = "msg"
	logFieldApp       = "app"
)

// newLogger builds the logger for one run of the app from the global flags.
// Logs always go to the app's error stream so they never mix with packed data
// on standard output.
func newLogger(cCtx *cli.Context) (*logrus.Entry, error) {
	logger := logrus.New()
	logger.SetOutput(cCtx.App.ErrWriter)

	switch cCtx.String("log-format") {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  logFieldTimeStamp,
				logrus.FieldKeyLevel: logFieldLevel,
				logrus.FieldKeyMsg:   logFieldMessage,
			},
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", cCtx.String("log-format"))
	}

	if cCtx.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger.WithFields(logrus.Fields{logFieldApp: cCtx.App.Name}), nil
}
