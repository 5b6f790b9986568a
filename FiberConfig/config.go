package FiberConfig

import (
	"log"
	"os"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ServerConfig is read from config.json5 at boot.
type ServerConfig struct {
	Port               string `json:"port"`
	CORSOrigins        string `json:"cors_origins"`
	ReminderSchedule   string `json:"reminder_schedule"`
	ReminderGraceDays  int    `json:"reminder_grace_days"`
	RunRemindersOnBoot bool   `json:"run_reminders_on_boot"`
	TemplatesDir       string `json:"templates_dir"`
}

func defaultConfig() ServerConfig {
	return ServerConfig{
		Port:              ":3001",
		CORSOrigins:       "*",
		ReminderSchedule:  "0 0 8 * * *",
		ReminderGraceDays: 0,
		TemplatesDir:      "./Templates",
	}
}

// LoadConfig reads config.json5, falling back to defaults when the file
// is absent or a field is empty.
func LoadConfig(path string) ServerConfig {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("No config file at %s, using defaults", path)
		return config
	}

	var loaded ServerConfig
	if err := json5.Unmarshal(data, &loaded); err != nil {
		log.Printf("Could not parse %s: %v, using defaults", path, err)
		return config
	}

	if loaded.Port != "" {
		config.Port = loaded.Port
	}
	if loaded.CORSOrigins != "" {
		config.CORSOrigins = loaded.CORSOrigins
	}
	if loaded.ReminderSchedule != "" {
		config.ReminderSchedule = loaded.ReminderSchedule
	}
	if loaded.ReminderGraceDays > 0 {
		config.ReminderGraceDays = loaded.ReminderGraceDays
	}
	if loaded.TemplatesDir != "" {
		config.TemplatesDir = loaded.TemplatesDir
	}
	config.RunRemindersOnBoot = loaded.RunRemindersOnBoot

	return config
}
