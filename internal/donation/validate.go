package donation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateDonationInput is the donor-submitted request. Country is resolved
// server-side from the request origin, never taken from the payload.
type CreateDonationInput struct {
	Slug      string `json:"slug" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Message   string `json:"message" validate:"min=5"`
	Price     int64  `json:"price" validate:"min=10"`
	CreatorID string `json:"creatorId"`
	Country   string `json:"-"`
}

var validate = validator.New()

// Fixed user-facing messages, one per constrained field. The first violated
// constraint wins; validation runs in struct field order.
var fieldMessages = map[string]string{
	"Slug":    "O username precisa ter pelo menos 1 letra",
	"Name":    "O nome precisa ter pelo menos 1 letra",
	"Message": "A mensagem precisa ter pelo menos 5 letras",
	"Price":   "O valor precisa ser maior que 10",
}

// ValidateInput checks a donation request and returns the user-facing error
// for the first violated constraint. It has no side effects.
func ValidateInput(in CreateDonationInput) *Error {
	if err := validate.Struct(in); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			field := verrs[0].StructField()
			if msg, ok := fieldMessages[field]; ok {
				return newValidationError(strings.ToLower(field), msg)
			}
		}
		return newValidationError("request", "Dados inválidos")
	}

	if in.CreatorID == "" {
		return ErrCreatorNotSpecified
	}

	return nil
}
