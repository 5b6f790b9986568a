package main

import (
	"Fleeto/CronJobs"
	"Fleeto/FiberConfig"
	"Fleeto/Models"
	"Fleeto/Notifications"
	"log"
)

func main() {
	Models.Connect()

	config := FiberConfig.LoadConfig("config.json5")

	if err := Notifications.InitFirebase(); err != nil {
		log.Println("Firebase disabled:", err)
	}

	scheduler := CronJobs.NewReminderScheduler(config.ReminderGraceDays, config.RunRemindersOnBoot)
	if err := scheduler.Start(); err != nil {
		log.Println("Failed to start reminder scheduler:", err)
	}
	if config.ReminderSchedule != "" {
		if err := scheduler.UpdateSchedule(config.ReminderSchedule); err != nil {
			log.Println("Failed to apply reminder schedule:", err)
		}
	}
	defer scheduler.Stop()

	app := FiberConfig.FiberConfig(config)
	log.Fatal(app.Listen(config.Port))
}
