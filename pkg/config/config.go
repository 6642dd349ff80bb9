package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/sessio/pkg/session"
)

// Settings is the on-disk configuration, loaded from
// ~/.config/sessio/sessio.toml and overridable through SESSIO_* env vars.
type Settings struct {
	Timer   TimerSettings   `mapstructure:"timer"`
	Summary SummarySettings `mapstructure:"summary"`
	Todo    TodoSettings    `mapstructure:"todo"`
	Music   MusicSettings   `mapstructure:"music"`
	Theme   ThemeSettings   `mapstructure:"theme"`
}

type TimerSettings struct {
	WorkMinutes            int `mapstructure:"work_minutes"`
	ShortBreakMinutes      int `mapstructure:"short_break_minutes"`
	LongBreakMinutes       int `mapstructure:"long_break_minutes"`
	SessionsUntilLongBreak int `mapstructure:"sessions_until_long_break"`
}

type SummarySettings struct {
	DailyGoalMinutes int `mapstructure:"daily_goal_minutes"`
}

type TodoSettings struct {
	AutoSave        bool   `mapstructure:"auto_save"`
	SavePath        string `mapstructure:"save_path"`
	MaxDisplayItems int    `mapstructure:"max_display_items"`
}

type MusicSettings struct {
	Directory     string  `mapstructure:"directory"`
	DefaultVolume float64 `mapstructure:"default_volume"`
	AutoPlayNext  bool    `mapstructure:"auto_play_next"`
	AlarmVolume   float64 `mapstructure:"alarm_volume"`
	AlarmSeconds  int     `mapstructure:"alarm_seconds"`
}

type ThemeSettings struct {
	UseDracula bool `mapstructure:"use_dracula"`
}

// SessionSettings converts the timer block into engine settings.
func (s Settings) SessionSettings() session.Settings {
	return session.Settings{
		Work:                   time.Duration(s.Timer.WorkMinutes) * time.Minute,
		ShortBreak:             time.Duration(s.Timer.ShortBreakMinutes) * time.Minute,
		LongBreak:              time.Duration(s.Timer.LongBreakMinutes) * time.Minute,
		SessionsUntilLongBreak: s.Timer.SessionsUntilLongBreak,
	}
}

// Default returns the settings written on first run.
func Default() Settings {
	return Settings{
		Timer: TimerSettings{
			WorkMinutes:            25,
			ShortBreakMinutes:      5,
			LongBreakMinutes:       15,
			SessionsUntilLongBreak: 4,
		},
		Summary: SummarySettings{
			DailyGoalMinutes: 120,
		},
		Todo: TodoSettings{
			AutoSave:        true,
			SavePath:        "~/.local/share/sessio",
			MaxDisplayItems: 20,
		},
		Music: MusicSettings{
			Directory:     "~/Music",
			DefaultVolume: 0.8,
			AutoPlayNext:  true,
			AlarmVolume:   1.0,
			AlarmSeconds:  3,
		},
		Theme: ThemeSettings{
			UseDracula: true,
		},
	}
}

// Path reports the config file location, honoring SESSIO_CONFIG_DIR.
func Path() (string, error) {
	if dir := os.Getenv("SESSIO_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "sessio.toml"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".config", "sessio", "sessio.toml"), nil
}

// Load reads settings from disk, writing the default file first if none
// exists. On any read or parse error the defaults are returned alongside the
// error so the caller can keep running.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads settings from an explicit path, creating it with defaults
// when missing.
func LoadFile(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefault(path); err != nil {
			return Default(), err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("SESSIO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Default(), fmt.Errorf("reading %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("timer.work_minutes", d.Timer.WorkMinutes)
	v.SetDefault("timer.short_break_minutes", d.Timer.ShortBreakMinutes)
	v.SetDefault("timer.long_break_minutes", d.Timer.LongBreakMinutes)
	v.SetDefault("timer.sessions_until_long_break", d.Timer.SessionsUntilLongBreak)
	v.SetDefault("summary.daily_goal_minutes", d.Summary.DailyGoalMinutes)
	v.SetDefault("todo.auto_save", d.Todo.AutoSave)
	v.SetDefault("todo.save_path", d.Todo.SavePath)
	v.SetDefault("todo.max_display_items", d.Todo.MaxDisplayItems)
	v.SetDefault("music.directory", d.Music.Directory)
	v.SetDefault("music.default_volume", d.Music.DefaultVolume)
	v.SetDefault("music.auto_play_next", d.Music.AutoPlayNext)
	v.SetDefault("music.alarm_volume", d.Music.AlarmVolume)
	v.SetDefault("music.alarm_seconds", d.Music.AlarmSeconds)
	v.SetDefault("theme.use_dracula", d.Theme.UseDracula)
}

func (s *Settings) normalize() {
	if s.Timer.WorkMinutes <= 0 {
		s.Timer.WorkMinutes = Default().Timer.WorkMinutes
	}
	if s.Timer.ShortBreakMinutes <= 0 {
		s.Timer.ShortBreakMinutes = Default().Timer.ShortBreakMinutes
	}
	if s.Timer.LongBreakMinutes <= 0 {
		s.Timer.LongBreakMinutes = Default().Timer.LongBreakMinutes
	}
	if s.Timer.SessionsUntilLongBreak <= 0 {
		s.Timer.SessionsUntilLongBreak = Default().Timer.SessionsUntilLongBreak
	}
	if s.Summary.DailyGoalMinutes < 0 {
		s.Summary.DailyGoalMinutes = 0
	}
	if s.Todo.MaxDisplayItems <= 0 {
		s.Todo.MaxDisplayItems = Default().Todo.MaxDisplayItems
	}
	s.Music.DefaultVolume = clamp01(s.Music.DefaultVolume)
	s.Music.AlarmVolume = clamp01(s.Music.AlarmVolume)
	if s.Music.AlarmSeconds < 0 {
		s.Music.AlarmSeconds = 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	d := Default()
	body := fmt.Sprintf(defaultTemplate,
		d.Timer.WorkMinutes, d.Timer.ShortBreakMinutes, d.Timer.LongBreakMinutes,
		d.Timer.SessionsUntilLongBreak,
		d.Summary.DailyGoalMinutes,
		d.Todo.AutoSave, d.Todo.SavePath, d.Todo.MaxDisplayItems,
		d.Music.Directory, d.Music.DefaultVolume, d.Music.AutoPlayNext,
		d.Music.AlarmVolume, d.Music.AlarmSeconds,
		d.Theme.UseDracula,
	)
	return os.WriteFile(path, []byte(body), 0o644)
}

const defaultTemplate = `[timer]
work_minutes = %d
short_break_minutes = %d
long_break_minutes = %d
sessions_until_long_break = %d

[summary]
daily_goal_minutes = %d

[todo]
auto_save = %t
save_path = %q
max_display_items = %d

[music]
directory = %q
default_volume = %.2f
auto_play_next = %t
alarm_volume = %.2f
alarm_seconds = %d

[theme]
use_dracula = %t
`
