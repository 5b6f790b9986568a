package Whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
)

// gatewayURL points at the go-whatsapp-web-multidevice gateway.
func gatewayURL() string {
	if url := os.Getenv("WHATSAPP_SERVICE_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

func CheckWPLogin(c *fiber.Ctx) error {
	client := &http.Client{}

	req, err := http.NewRequest("GET", gatewayURL()+"/app/devices", nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check login status",
		})
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read response",
		})
	}

	var output struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Results []struct {
			Name   string `json:"name"`
			Device string `json:"device"`
		} `json:"results"`
	}

	if err = json.Unmarshal(body, &output); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse response",
		})
	}

	if len(output.Results) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"error": "Not logged in to WhatsApp",
		})
	}
	return c.Status(http.StatusOK).JSON(nil)
}

func GetQRCode(c *fiber.Ctx) error {
	client := &http.Client{}

	req, err := http.NewRequest("GET", gatewayURL()+"/app/login", nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get QR link",
		})
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read response body",
		})
	}

	var output struct {
		Results struct {
			QRLink string `json:"qr_link"`
		} `json:"results"`
	}

	if err = json.Unmarshal(body, &output); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse response",
		})
	}

	req, err = http.NewRequest("GET", output.Results.QRLink, nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create QR request",
		})
	}

	res, err = client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get QR code",
		})
	}
	defer res.Body.Close()

	qrBody, err := io.ReadAll(res.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read QR code",
		})
	}

	c.Set("Content-Disposition", "attachment; filename=qr.png")
	c.Set("Content-Type", "image/png")

	return c.Send(qrBody)
}

func SendMessage(phone, message string) error {
	client := &http.Client{}

	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", gatewayURL()+"/send/message", bytes.NewBuffer(payload))
	if err != nil {
		fmt.Println(err)
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		fmt.Println(err)
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Println(err)
		return err
	}
	fmt.Println("response Body:", string(body))
	return nil
}
