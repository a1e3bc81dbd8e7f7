package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weekly-exercises/catalog-api/internal/api/metrics"
	"github.com/weekly-exercises/catalog-api/internal/core/domain"
)

// partial marks request types where every field is optional but at least one
// must be present.
type partial interface {
	partial()
}

// bindBody decodes the JSON object in the request body into dst and validates
// it. dst must be a pointer to a flat struct with json tags.
//
// Fields are decoded one by one so that each type mismatch becomes its own
// violation; a field that failed to decode is not validated further. Messages
// come back in field declaration order.
func bindBody(c echo.Context, resource string, dst any) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	mismatched := make(map[string]string)
	present := 0

	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		value, ok := fields[name]
		if !ok || name == "" {
			continue
		}
		present++
		if string(bytes.TrimSpace(value)) == "null" {
			continue
		}
		if err := json.Unmarshal(value, rv.Field(i).Addr().Interface()); err != nil {
			if !setWholeNumber(rv.Field(i), value) {
				mismatched[name] = typeMessage(name, rt.Field(i).Type)
			}
		}
	}

	var byField map[string][]string
	if err := c.Validate(dst); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		byField = make(map[string][]string, len(ve.Violations))
		for _, v := range ve.Violations {
			byField[v.Field] = append(byField[v.Field], v.Message)
		}
	}

	out := &domain.ValidationError{}
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		if msg, ok := mismatched[name]; ok {
			out.Violations = append(out.Violations, domain.FieldViolation{Field: name, Message: msg})
			continue
		}
		for _, msg := range byField[name] {
			out.Violations = append(out.Violations, domain.FieldViolation{Field: name, Message: msg})
		}
	}
	if _, ok := dst.(partial); ok && present == 0 {
		out.Violations = append(out.Violations, domain.FieldViolation{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(out.Violations) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(resource).Inc()
		return out
	}
	return nil
}

// setWholeNumber stores a whole number given as 2021.0 or "2021" into an
// integer field. It reports false for anything else, including 2021.5.
func setWholeNumber(field reflect.Value, raw json.RawMessage) bool {
	t := field.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
	default:
		return false
	}

	text := string(bytes.TrimSpace(raw))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return false
	}
	n := reflect.New(t).Elem()
	if n.OverflowInt(int64(f)) {
		return false
	}
	n.SetInt(int64(f))

	if field.Kind() == reflect.Ptr {
		field.Set(n.Addr())
	} else {
		field.Set(n)
	}
	return true
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func typeMessage(field string, t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int64, reflect.Int32:
		return field + " must be an integer"
	case reflect.Float64, reflect.Float32:
		return field + " must be a number"
	case reflect.Bool:
		return field + " must be a boolean"
	default:
		return field + " must be a string"
	}
}
