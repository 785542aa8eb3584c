package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type UntisConfig struct {
	Server   string `yaml:"server" validate:"required"`
	School   string `yaml:"school" validate:"required"`
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`

	TimetableSource string `yaml:"timetableSource" validate:"required|in:class,teacher,subject,room,student"`
	SourceName      string `yaml:"sourceName"`

	KeepLoggedIn      bool `yaml:"keepLoggedIn"`
	ExtendedTimetable bool `yaml:"extendedTimetable"`
}

type PollConfig struct {
	Interval     time.Duration `yaml:"interval" validate:"required|min:1"`
	DaysToFuture int           `yaml:"daysToFuture"`
	Timezone     string        `yaml:"timezone"`
}

type FilterConfig struct {
	Mode        string   `yaml:"mode" validate:"in:none,allow,block"`
	Subjects    []string `yaml:"subjects"`
	Description []string `yaml:"description"`
}

type CalendarConfig struct {
	LongName             bool   `yaml:"longName"`
	ShowCancelledLessons bool   `yaml:"showCancelledLessons"`
	ShowRoomChange       bool   `yaml:"showRoomChange"`
	DescriptionMode      string `yaml:"descriptionMode" validate:"in:json,lesson_info,none"`
	Room                 string `yaml:"room" validate:"in:none,short,long,short-long"`
}

type SensorConfig struct {
	GenerateJSON     bool `yaml:"generateJson"`
	IncludeCancelled bool `yaml:"includeCancelled"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName string
	Debug   bool
	Path    string

	Untis     UntisConfig    `yaml:"untis"`
	Poll      PollConfig     `yaml:"poll"`
	Filter    FilterConfig   `yaml:"filter"`
	Calendar  CalendarConfig `yaml:"calendar"`
	Sensor    SensorConfig   `yaml:"sensor"`
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// Location resolves the configured timezone; an empty value means the
// process-local zone, matching how WebUntis reports naive local times.
func (c *Config) Location() (*time.Location, error) {
	if c.Poll.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Poll.Timezone)
}
