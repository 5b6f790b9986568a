package Notifications

import (
	"Fleeto/Models"
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Global Firebase client
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase wires up Cloud Messaging. Call once at startup; reminder
// pushes are skipped silently when it was never called.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentials == "" {
		credentials = "./firebase-service-account.json"
	}
	opt := option.WithCredentialsFile(credentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// SendInvoiceReminder pushes an overdue-invoice reminder to every
// registered device of the invoice's company.
func SendInvoiceReminder(invoice *Models.Invoice) error {
	if firebaseClient == nil {
		return fmt.Errorf("firebase client not initialized, call InitFirebase first")
	}

	var tokens []Models.FCMToken
	if err := Models.DB.Where("company_id = ?", invoice.CompanyID).Find(&tokens).Error; err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.Message{
		Data: map[string]string{
			"invoice_id":        fmt.Sprintf("%d", invoice.ID),
			"invoice_number":    invoice.InvoiceNumber,
			"due_date":          invoice.DueDate.Format("2006-01-02"),
			"status":            invoice.Status,
			"remaining_balance": fmt.Sprintf("%.2f", invoice.RemainingBalance),
		},
		Notification: &messaging.Notification{
			Title: "Overdue Invoice",
			Body: fmt.Sprintf("Invoice %s is overdue with %.2f outstanding",
				invoice.InvoiceNumber, invoice.RemainingBalance),
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Icon:  "invoice_reminder_icon",
				Color: "#FF8C00",
				Sound: "default",
			},
			Priority: "high",
		},
	}

	for _, token := range tokens {
		message.Token = token.Value
		response, err := firebaseClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending reminder to token %d: %v", token.ID, err)
			continue
		}
		log.Printf("Reminder sent for invoice %s: %s", invoice.InvoiceNumber, response)
	}
	return nil
}
