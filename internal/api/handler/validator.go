package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// isoLayouts are the accepted ISO-8601 forms, most specific first.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISODate parses s in any of isoLayouts. Values without an offset are UTC.
func parseISODate(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not an ISO 8601 date", s)
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v   *validator.Validate
	now func() time.Time
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	ev := &echoValidator{v: validator.New(), now: time.Now}

	ev.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = ev.v.RegisterValidation("movieyear", func(fl validator.FieldLevel) bool {
		y := fl.Field().Int()
		return y >= domain.MinMovieYear && y <= int64(ev.now().Year())
	})
	// maxbytes bounds the encoded length; max counts runes.
	_ = ev.v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	_ = ev.v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := parseISODate(fl.Field().String())
		return err == nil
	})

	return ev
}

// Validate satisfies the echo.Validator interface. Every failed constraint is
// reported; the error is a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := &domain.ValidationError{Violations: make([]domain.FieldViolation, 0, len(ve))}
			for _, fe := range ve {
				out.Violations = append(out.Violations, domain.FieldViolation{
					Field:   fe.Field(),
					Message: ev.fieldError(fe),
				})
			}
			return out
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func (ev *echoValidator) fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "movieyear":
		return fmt.Sprintf("%s must be between %d and %d", field, domain.MinMovieYear, ev.now().Year())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "isodate":
		return field + " must be a valid ISO 8601 date"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
