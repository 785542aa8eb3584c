package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"untisd/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		Untis: structures.UntisConfig{
			Server:          "demo.webuntis.com",
			School:          "demo-school",
			Username:        "alice",
			Password:        "secret",
			TimetableSource: "class",
			SourceName:      "5a",
		},
		Poll: structures.PollConfig{
			Interval:     5 * time.Minute,
			DaysToFuture: 30,
			Timezone:     "Europe/Berlin",
		},
		Filter: structures.FilterConfig{Mode: "none"},
		Calendar: structures.CalendarConfig{
			DescriptionMode: "json",
			Room:            "long",
		},
		WebServer: structures.Server{Host: "0.0.0.0", Port: 8080},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/var/log",
		},
	}
}

func TestValidate_Success(t *testing.T) {
	require.NoError(t, NewCnfValidator(validConfig()).Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	conf := validConfig()
	conf.Untis.Password = ""

	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestValidate_BadTimetableSource(t *testing.T) {
	conf := validConfig()
	conf.Untis.TimetableSource = "building"

	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestValidate_BadLogLevel(t *testing.T) {
	conf := validConfig()
	conf.Logger.Level = "verbose"

	assert.Error(t, NewCnfValidator(conf).Validate())
}

func TestValidate_BadTimezone(t *testing.T) {
	conf := validConfig()
	conf.Poll.Timezone = "Mars/Olympus"

	err := NewCnfValidator(conf).Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll.timezone")
}

func TestValidate_EmptyTimezoneIsLocal(t *testing.T) {
	conf := validConfig()
	conf.Poll.Timezone = ""

	assert.NoError(t, NewCnfValidator(conf).Validate())
}

func TestValidate_BadPort(t *testing.T) {
	conf := validConfig()
	conf.WebServer.Port = 0

	assert.Error(t, NewCnfValidator(conf).Validate())
}
