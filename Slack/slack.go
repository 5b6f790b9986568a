package Slack

import (
	"Fleeto/Models"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SlackClient holds the Slack bot token and base URL
type SlackClient struct {
	Token   string
	BaseURL string
}

// SlackMessage represents a message payload
type SlackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
	Parse   string `json:"parse,omitempty"`
}

// SlackResponse represents the API response
type SlackResponse struct {
	OK      bool   `json:"ok"`
	Channel string `json:"channel,omitempty"`
	TS      string `json:"ts,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// PinMessageRequest represents the pin message payload
type PinMessageRequest struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"timestamp"`
}

// NewSlackClient creates a new Slack client
// Required Bot Token Scopes:
// - chat:write (send messages)
// - pins:write (pin/unpin messages)
// - pins:read (list pinned messages)
// - chat:write.public (send to channels without being invited)
func NewSlackClient(token string) *SlackClient {
	return &SlackClient{
		Token:   token,
		BaseURL: "https://slack.com/api",
	}
}

// SendMessage sends a message to a Slack channel
func (s *SlackClient) SendMessage(channel, message string) (*SlackResponse, error) {
	payload := SlackMessage{
		Channel: channel,
		Text:    message,
		Parse:   "full",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/chat.postMessage", s.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}

	if !slackResp.OK {
		return &slackResp, fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return &slackResp, nil
}

// PinMessage pins a message to a channel
func (s *SlackClient) PinMessage(channel, timestamp string) error {
	payload := PinMessageRequest{
		Channel:   channel,
		Timestamp: timestamp,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/pins.add", s.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("error unmarshaling response: %v", err)
	}

	if !slackResp.OK {
		switch slackResp.Error {
		case "no_permission":
			return fmt.Errorf("bot lacks 'pins:write' permission")
		case "channel_not_found":
			return fmt.Errorf("channel '%s' not found or bot not in channel", channel)
		case "message_not_found":
			return fmt.Errorf("message with timestamp '%s' not found", timestamp)
		case "already_pinned":
			return nil // Already pinned, not an error
		default:
			return fmt.Errorf("slack API error: %s", slackResp.Error)
		}
	}

	return nil
}

// UnpinMessage unpins a message from a channel
func (s *SlackClient) UnpinMessage(channel, timestamp string) error {
	payload := PinMessageRequest{
		Channel:   channel,
		Timestamp: timestamp,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %v", err)
	}

	url := fmt.Sprintf("%s/pins.remove", s.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	var slackResp SlackResponse
	if err := json.Unmarshal(body, &slackResp); err != nil {
		return fmt.Errorf("error unmarshaling response: %v", err)
	}

	if !slackResp.OK && slackResp.Error != "no_pin" {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}

// GetPinnedMessages gets all pinned message timestamps from a channel
func (s *SlackClient) GetPinnedMessages(channel string) ([]string, error) {
	url := fmt.Sprintf("%s/pins.list?channel=%s", s.BaseURL, channel)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.Token))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	var response struct {
		OK    bool `json:"ok"`
		Items []struct {
			Message struct {
				TS   string `json:"ts"`
				Text string `json:"text"`
			} `json:"message"`
		} `json:"items"`
		Error string `json:"error,omitempty"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}

	if !response.OK {
		return nil, fmt.Errorf("slack API error: %s", response.Error)
	}

	var timestamps []string
	for _, item := range response.Items {
		timestamps = append(timestamps, item.Message.TS)
	}

	return timestamps, nil
}

// SendAndPin posts a digest and pins it, unpinning any previous digest
// so the channel only ever carries one pinned board.
func (s *SlackClient) SendAndPin(channel, message string) error {
	pinned, err := s.GetPinnedMessages(channel)
	if err != nil {
		log.Printf("Could not list pinned messages: %v", err)
	}

	resp, err := s.SendMessage(channel, message)
	if err != nil {
		return err
	}

	for _, ts := range pinned {
		if err := s.UnpinMessage(channel, ts); err != nil {
			log.Printf("Could not unpin %s: %v", ts, err)
		}
	}

	return s.PinMessage(channel, resp.TS)
}

// generateOverdueDigest builds the channel board for overdue invoices,
// grouped by client and sorted by outstanding balance.
func generateOverdueDigest(invoices []Models.Invoice) string {
	var sb strings.Builder
	sb.WriteString(":receipt: *Overdue Invoices*\n")
	sb.WriteString(fmt.Sprintf("_Updated: %s_\n\n", time.Now().Format("2006-01-02 15:04")))

	if len(invoices) == 0 {
		sb.WriteString("All invoices settled. Nothing overdue.\n")
		return sb.String()
	}

	byClient := make(map[string][]Models.Invoice)
	for _, invoice := range invoices {
		client := invoice.Contract.ClientName
		if client == "" {
			client = "Unassigned"
		}
		byClient[client] = append(byClient[client], invoice)
	}

	clients := make([]string, 0, len(byClient))
	for client := range byClient {
		clients = append(clients, client)
	}
	sort.Strings(clients)

	var grandTotal float64
	for _, client := range clients {
		sb.WriteString(fmt.Sprintf("*%s*\n", client))
		group := byClient[client]
		sort.Slice(group, func(i, j int) bool {
			return group[i].RemainingBalance > group[j].RemainingBalance
		})
		for _, invoice := range group {
			days := int(time.Since(invoice.DueDate).Hours() / 24)
			sb.WriteString(fmt.Sprintf("  • %s — %.2f outstanding, %d days overdue\n",
				invoice.InvoiceNumber, invoice.RemainingBalance, days))
			grandTotal += invoice.RemainingBalance
		}
	}

	sb.WriteString(fmt.Sprintf("\n*Total outstanding: %.2f across %d invoices*\n",
		grandTotal, len(invoices)))
	return sb.String()
}

// SendOverdueDigestToSlack posts the overdue-invoice board to the
// configured channel.
func SendOverdueDigestToSlack() error {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	slackToken := os.Getenv("SLACK_BOT_TOKEN")
	if slackToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN not set")
	}
	channel := os.Getenv("SLACK_CHANNEL")
	if channel == "" {
		return fmt.Errorf("SLACK_CHANNEL not set")
	}

	var invoices []Models.Invoice
	if err := Models.DB.Preload("Contract").Where(
		"due_date < ? AND status IN ?",
		time.Now(), []string{Models.StatusUnpaid, Models.StatusPartial, Models.StatusSent},
	).Find(&invoices).Error; err != nil {
		return err
	}

	client := NewSlackClient(slackToken)
	return client.SendAndPin(channel, generateOverdueDigest(invoices))
}
