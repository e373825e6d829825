package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/storykeeper/internal/client/models"
	"github.com/dmitrijs2005/storykeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is enforced before a registration reaches the server.
const MinPasswordLength = 8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	if err := v.RegisterValidation("password", longEnough); err != nil {
		panic(fmt.Sprintf("register password validation: %v", err))
	}
	return v
}

// notBlank fails for strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// longEnough counts characters, not bytes.
func longEnough(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) >= MinPasswordLength
}

// ValidateDraft checks a draft before any remote or local write.
func ValidateDraft(d models.StoryDraft) error {
	return validationError(validate.Struct(d))
}

type credentials struct {
	Name     string `validate:"omitempty,notblank"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registration struct {
	Name     string `validate:"notblank"`
	Email    string `validate:"required,email"`
	Password string `validate:"password"`
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.NewError(common.KindInternal, "validation could not run", err)
	}
	return common.NewError(common.KindValidation, fieldMessage(verrs[0]), err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Description":
		return "description must not be empty"
	case "Lat":
		return "latitude must be between -90 and 90"
	case "Lon":
		return "longitude must be between -180 and 180"
	case "Data":
		if fe.Tag() == "max" {
			return "photo must not be larger than 1 MB"
		}
		return "photo is empty"
	case "MimeType":
		return "photo must be a JPEG, PNG, GIF or WebP image"
	case "Email":
		return "email address is not valid"
	case "Password":
		if fe.Tag() == "password" {
			return fmt.Sprintf("password must be at least %d characters", MinPasswordLength)
		}
		return "password is required"
	case "Name":
		return "name must not be empty"
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
}
