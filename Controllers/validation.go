package Controllers

import (
	"Fleeto/Models"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)
}

// validationFailed translates validator errors into a 400 response.
func validationFailed(c *fiber.Ctx, err error) error {
	messages := []string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			messages = append(messages, fe.Translate(translator))
		}
	} else {
		messages = append(messages, err.Error())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":    "Validation failed",
		"messages": messages,
	})
}

// requestCompanyID returns the tenant scope of the authenticated user.
func requestCompanyID(c *fiber.Ctx) uint {
	if user, ok := c.Locals("user").(Models.User); ok {
		return user.CompanyID
	}
	return 0
}
