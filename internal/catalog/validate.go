package catalog

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/information-sharing-networks/pim-catalog/internal/apierr"
	"github.com/information-sharing-networks/pim-catalog/internal/catalog/standard"
)

// CodeMaxLength is the maximum number of characters of an attribute group code.
const CodeMaxLength = 100

var codePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Violation messages returned by Validate.
const (
	MessageBlank      = "This value should not be blank."
	MessageCodeFormat = "Attribute group code may contain only letters, numbers and underscores"
	MessageTooLong    = "This value is too long. It should have 100 characters or less."
	MessageUsed       = "This value is already used."
)

// CheckAttributes rejects the first attribute code that does not exist.
// Unknown attributes are reported as a schema error, like the other structural problems.
func CheckAttributes(ctx context.Context, registry AttributeRegistry, doc *standard.Document) error {
	for _, code := range doc.Attributes {
		exists, err := registry.AttributeExists(ctx, code)
		if err != nil {
			return apierr.WrapInternalError(err, "failed to check attribute")
		}
		if !exists {
			return apierr.NewSchemaError(fmt.Sprintf(
				`Property "%s" expects a valid attribute code. The attribute does not exist, "%s" given.`,
				standard.PropertyAttributes, code))
		}
	}
	return nil
}

// Validator checks the business rules of a new attribute group.
type Validator struct {
	groups  Repository
	locales LocaleRegistry
}

func NewValidator(groups Repository, locales LocaleRegistry) *Validator {
	return &Validator{groups: groups, locales: locales}
}

// Validate returns a validation error listing every violation (code first, then labels), or nil.
func (v *Validator) Validate(ctx context.Context, doc *standard.Document) error {
	var violations []apierr.Violation

	codeViolations, err := v.validateCode(ctx, doc.Code)
	if err != nil {
		return err
	}
	violations = append(violations, codeViolations...)

	for _, label := range doc.Labels {
		exists := false
		if label.Locale != "" {
			exists, err = v.locales.LocaleExists(ctx, label.Locale)
			if err != nil {
				return apierr.WrapInternalError(err, "failed to check locale")
			}
		}
		if !exists {
			violations = append(violations, apierr.Violation{
				Property: standard.PropertyLabels,
				Message:  fmt.Sprintf(`The locale "%s" does not exist.`, label.Locale),
			})
		}
	}

	if len(violations) > 0 {
		return apierr.NewValidationError(violations...)
	}
	return nil
}

func (v *Validator) validateCode(ctx context.Context, code string) ([]apierr.Violation, error) {
	if code == "" {
		return []apierr.Violation{codeViolation(MessageBlank)}, nil
	}

	var violations []apierr.Violation
	if !codePattern.MatchString(code) {
		violations = append(violations, codeViolation(MessageCodeFormat))
	}
	if utf8.RuneCountInString(code) > CodeMaxLength {
		violations = append(violations, codeViolation(MessageTooLong))
	}
	if len(violations) > 0 {
		return violations, nil
	}

	existing, err := v.groups.FindOneByIdentifier(ctx, code)
	if err != nil {
		return nil, apierr.WrapInternalError(err, "failed to check code uniqueness")
	}
	if existing != nil {
		violations = append(violations, codeViolation(MessageUsed))
	}
	return violations, nil
}

func codeViolation(msg string) apierr.Violation {
	return apierr.Violation{Property: standard.PropertyCode, Message: msg}
}
