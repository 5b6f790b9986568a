package Whatsapp

import (
	"Fleeto/Models"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Known expense categories. Anything else ends up in the notes.
var expenseCategories = map[string]bool{
	"fuel":        true,
	"maintenance": true,
	"tolls":       true,
	"parking":     true,
	"advance":     true,
	"other":       true,
}

// Command is a parsed WhatsApp message.
type Command struct {
	Action   string
	Amount   float64
	Category string
	Plate    string
	Notes    string
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadAmount      = errors.New("amount must be a positive number")
)

// ParseCommand reads a line-oriented free-text command.
//
// Supported forms:
//
//	expense <amount> <category> [truck <plate>] [notes...]
//	help
func ParseCommand(text string) (Command, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	switch strings.ToLower(fields[0]) {
	case "help":
		return Command{Action: "help"}, nil
	case "expense", "exp":
		return parseExpense(fields[1:])
	default:
		return Command{}, ErrUnknownCommand
	}
}

func parseExpense(fields []string) (Command, error) {
	if len(fields) == 0 {
		return Command{}, ErrBadAmount
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || amount <= 0 {
		return Command{}, ErrBadAmount
	}

	cmd := Command{Action: "expense", Amount: amount, Category: "other"}
	rest := fields[1:]

	if len(rest) > 0 && expenseCategories[strings.ToLower(rest[0])] {
		cmd.Category = strings.ToLower(rest[0])
		rest = rest[1:]
	}

	// "truck ABC-123" binds the expense to a vehicle.
	if len(rest) >= 2 && strings.EqualFold(rest[0], "truck") {
		cmd.Plate = strings.ToUpper(rest[1])
		rest = rest[2:]
	}

	cmd.Notes = strings.Join(rest, " ")
	return cmd, nil
}

const helpText = "Commands:\n" +
	"expense <amount> <category> [truck <plate>] [notes]\n" +
	"Categories: fuel, maintenance, tolls, parking, advance, other"

// HandleMessage resolves the sender to a driver, applies the command
// and returns the reply text.
func HandleMessage(phone, text string) string {
	var driver Models.Driver
	if err := Models.DB.Where("phone = ? AND is_active = ?", normalizePhone(phone), true).First(&driver).Error; err != nil {
		return "This number is not registered to a driver."
	}

	cmd, err := ParseCommand(text)
	if err != nil {
		if errors.Is(err, ErrBadAmount) {
			return "Could not read the amount. " + helpText
		}
		return helpText
	}

	switch cmd.Action {
	case "help":
		return helpText
	case "expense":
		return recordExpense(driver, cmd)
	}
	return helpText
}

func recordExpense(driver Models.Driver, cmd Command) string {
	expense := Models.Expense{
		CompanyID: driver.CompanyID,
		DriverID:  &driver.ID,
		Category:  cmd.Category,
		Amount:    cmd.Amount,
		Date:      time.Now(),
		Notes:     cmd.Notes,
		Source:    Models.ExpenseSourceWhatsApp,
	}

	if cmd.Plate != "" {
		var vehicle Models.Vehicle
		if err := Models.DB.Where("company_id = ? AND plate_number = ?", driver.CompanyID, cmd.Plate).First(&vehicle).Error; err != nil {
			return fmt.Sprintf("No vehicle with plate %s.", cmd.Plate)
		}
		expense.VehicleID = &vehicle.ID
	}

	if err := Models.DB.Create(&expense).Error; err != nil {
		return "Could not save the expense, try again."
	}

	return fmt.Sprintf("Recorded %s expense of %.2f for %s.", expense.Category, expense.Amount, driver.Name)
}

// normalizePhone strips WhatsApp JID suffixes and formatting so the
// gateway's sender matches the number stored on the driver.
func normalizePhone(phone string) string {
	if at := strings.IndexByte(phone, '@'); at >= 0 {
		phone = phone[:at]
	}
	phone = strings.TrimPrefix(phone, "+")
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}
