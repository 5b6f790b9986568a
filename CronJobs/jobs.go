package CronJobs

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"Fleeto/Models"
	"Fleeto/Notifications"
	"Fleeto/Slack"
	"Fleeto/email"

	"github.com/robfig/cron/v3"
)

// ReminderScheduler runs the daily overdue-invoice sweep.
type ReminderScheduler struct {
	cronScheduler  *cron.Cron
	graceDays      int
	runImmediately bool
	jobID          cron.EntryID
}

// NewReminderScheduler creates a scheduler. graceDays delays reminders
// for invoices only just past their due date.
func NewReminderScheduler(graceDays int, runImmediately bool) *ReminderScheduler {
	return &ReminderScheduler{
		cronScheduler:  cron.New(cron.WithSeconds()),
		graceDays:      graceDays,
		runImmediately: runImmediately,
	}
}

// Start initiates the reminder cron job
func (s *ReminderScheduler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 8 * * *", func() {
		log.Println("Running scheduled daily invoice reminder sweep")
		s.runReminderSweep()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	activeScheduler = s
	fmt.Println("Invoice reminder scheduler started - will run daily at 8:00 AM")

	if s.runImmediately {
		fmt.Println("Running initial reminder sweep")
		s.runReminderSweep()
	}

	return nil
}

// Stop terminates the scheduler
func (s *ReminderScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		if activeScheduler == s {
			activeScheduler = nil
		}
		log.Println("Invoice reminder scheduler stopped")
	}
}

// UpdateSchedule changes the sweep schedule
// Format: "0 0 8 * * *" = At 08:00:00 AM every day
func (s *ReminderScheduler) UpdateSchedule(schedule string) error {
	s.cronScheduler.Remove(s.jobID)

	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled invoice reminder sweep")
		s.runReminderSweep()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Reminder schedule updated to: %s\n", schedule)
	return nil
}

// RunManualSweep executes a sweep outside the schedule
func (s *ReminderScheduler) RunManualSweep() {
	log.Println("Running manual reminder sweep")
	s.runReminderSweep()
}

// runReminderSweep finds overdue invoices and pushes reminders to the
// registered devices, then refreshes the Slack board.
func (s *ReminderScheduler) runReminderSweep() {
	cutoff := time.Now().AddDate(0, 0, -s.graceDays)

	var invoices []Models.Invoice
	err := Models.DB.Preload("Contract").Where(
		"due_date < ? AND status IN ?",
		cutoff, []string{Models.StatusUnpaid, Models.StatusPartial, Models.StatusSent},
	).Find(&invoices).Error
	if err != nil {
		log.Printf("Error in reminder sweep: %v\n", err)
		return
	}

	if len(invoices) == 0 {
		log.Println("No overdue invoices found")
		return
	}

	log.Printf("Found %d overdue invoices\n", len(invoices))

	for i := range invoices {
		if err := Notifications.SendInvoiceReminder(&invoices[i]); err != nil {
			log.Printf("Error sending reminder for invoice %s: %v\n",
				invoices[i].InvoiceNumber, err)
		}
	}

	if err := Slack.SendOverdueDigestToSlack(); err != nil {
		log.Printf("Error updating Slack digest: %v\n", err)
	}

	if err := sendDigestEmail(invoices); err != nil {
		log.Printf("Error sending digest email: %v\n", err)
	}

	log.Println("Successfully completed reminder sweep")
}

// sendDigestEmail mails the overdue list to the finance inbox. Delivery
// is disabled when SMTP or the recipient is not configured.
func sendDigestEmail(invoices []Models.Invoice) error {
	config := Models.LoadEmailConfig()
	recipient := os.Getenv("REMINDER_EMAIL_TO")
	if config.SMTPServer == "" || recipient == "" {
		return nil
	}

	var body strings.Builder
	body.WriteString("<h2>Overdue Invoices</h2><table border=\"1\" cellpadding=\"4\">")
	body.WriteString("<tr><th>Invoice</th><th>Client</th><th>Due Date</th><th>Outstanding</th></tr>")
	for _, invoice := range invoices {
		body.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%.2f</td></tr>",
			invoice.InvoiceNumber,
			invoice.Contract.ClientName,
			invoice.DueDate.Format("2006-01-02"),
			invoice.RemainingBalance))
	}
	body.WriteString("</table>")

	return email.SendEmail(config, Models.EmailMessage{
		To:      []string{recipient},
		Subject: fmt.Sprintf("Overdue invoices digest - %s", time.Now().Format("2006-01-02")),
		Body:    body.String(),
		IsHTML:  true,
	})
}
