package Models

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FCMToken registers a device for payment-reminder pushes. One row per device,
// scoped to the company the registering user belongs to.
type FCMToken struct {
	gorm.Model
	CompanyID uint   `json:"company_id" gorm:"not null;index"`
	Value     string `json:"value" gorm:"size:512;not null;uniqueIndex"`
}

type UpdateTokenRequest struct {
	Value string `json:"value" validate:"required"`
}

func UpdateToken(c *fiber.Ctx) error {
	var req UpdateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Token value is required",
		})
	}

	companyID := uint(0)
	if user, ok := c.Locals("user").(User); ok {
		companyID = user.CompanyID
	}

	var token FCMToken
	err := DB.Where("value = ?", req.Value).
		FirstOrCreate(&token, FCMToken{CompanyID: companyID, Value: req.Value}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create/update token",
		})
	}

	if token.CompanyID != companyID {
		token.CompanyID = companyID
		if err := DB.Save(&token).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update token",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Token updated successfully",
		"token":   token,
	})
}
