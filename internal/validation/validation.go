// Package validation turns go-playground/validator struct tags into the
// human-readable field messages shown by the admin forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps a field path (json names, slice indexes written as "[]")
// optionally suffixed with ".<tag>" to the message shown for it, e.g.
// "animationSettings.cycleDuration.gt" or "images[].src".
type Messages map[string]string

// Error lists every field-level problem found in a payload.
type Error struct {
	Subject string
	Details []string
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return "validation failed: " + strings.Join(e.Details, "; ")
	}
	return fmt.Sprintf("%s: validation failed: %s", e.Subject, strings.Join(e.Details, "; "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var indexRe = regexp.MustCompile(`\[\d+\]`)

// Struct validates v and returns a *Error listing one message per failing
// rule, in field order and without duplicates. It returns nil when v is valid.
func Struct(subject string, v interface{}, msgs Messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Subject: subject, Details: []string{err.Error()}}
	}
	seen := map[string]bool{}
	out := &Error{Subject: subject}
	for _, fe := range fieldErrs {
		m := message(fe, msgs)
		if !seen[m] {
			seen[m] = true
			out.Details = append(out.Details, m)
		}
	}
	return out
}

// fieldPath strips the root type name from the namespace:
// "Hero.images[2].src" -> "images[2].src".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError, msgs Messages) string {
	p := fieldPath(fe)
	generic := indexRe.ReplaceAllString(p, "[]")
	for _, k := range []string{p + "." + fe.Tag(), generic + "." + fe.Tag(), p, generic} {
		if m, ok := msgs[k]; ok {
			return m
		}
	}
	return defaultMessage(p, fe)
}

func defaultMessage(p string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return p + " is required"
	case "min":
		if k := fe.Kind(); k == reflect.Slice || k == reflect.Array || k == reflect.Map {
			return fmt.Sprintf("%s must contain at least %s item(s)", p, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", p, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", p, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", p, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", p, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", p, fe.Param())
	case "email":
		return p + " must be a valid email address"
	case "url":
		return p + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", p, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is invalid (%s)", p, fe.Tag())
}

// TrimStrings trims surrounding whitespace from every string reachable
// through ptr: struct fields, slices, map values, pointers and interfaces,
// so decoded JSON documents (map[string]interface{}) are covered too.
// Map keys are left alone.
func TrimStrings(ptr interface{}) {
	trim(reflect.ValueOf(ptr))
}

func trim(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			trim(v.Elem())
		}
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		if !v.CanSet() {
			trim(v.Elem())
			return
		}
		// the dynamic value is not addressable; trim a copy and store it back
		cp := settableCopy(v.Elem())
		trim(cp)
		v.Set(cp)
	case reflect.Map:
		if v.IsNil() {
			return
		}
		for _, k := range v.MapKeys() {
			cp := settableCopy(v.MapIndex(k))
			trim(cp)
			v.SetMapIndex(k, cp)
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				trim(v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			trim(v.Index(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	}
}

func settableCopy(v reflect.Value) reflect.Value {
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	return cp
}
