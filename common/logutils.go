package common

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	serviceName     = "tracker"
	serviceInstance = ""
)

func init() {
	logger := logrus.StandardLogger()
	logger.Out = os.Stdout
	logger.Formatter = &logrus.JSONFormatter{}
	logger.AddHook(&DefaultFieldsHook{})

	if hostname, err := os.Hostname(); err == nil {
		serviceInstance = hostname
	}
}

// ConfigureLogging applies the service name and level to the standard logger.
func ConfigureLogging(name, level string) error {
	if name != "" {
		serviceName = name
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

func GetServiceName() string {
	return serviceName
}

func GetServiceInstance() string {
	return serviceInstance
}

type DefaultFieldsHook struct {
}

func (hook *DefaultFieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook *DefaultFieldsHook) Fire(e *logrus.Entry) error {
	e.Data["serviceName"] = GetServiceName()
	e.Data["serviceInstance"] = GetServiceInstance()
	return nil
}
