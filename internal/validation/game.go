// Package validation checks game form input.
//
// Validation is pure: it never touches the store or the filesystem. Callers
// decide what to do with a rejected upload.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"juegos/backend/internal/models"
)

const (
	MsgNameRequired  = "name must not be empty"
	MsgLevelsInvalid = "levels must not be empty and must be numeric"
	MsgDateInvalid   = "date must not be empty and must be a valid date"
	MsgImageRequired = "select an image in an accepted format"
)

// GameForm holds the text fields of a create or update request.
type GameForm struct {
	Name   string `form:"name" validate:"notblank"`
	Levels string `form:"levels" validate:"required,numeric,gamelevels"`
	Date   string `form:"date" validate:"required,gamedate"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f GameForm) Trimmed() GameForm {
	return GameForm{
		Name:   strings.TrimSpace(f.Name),
		Levels: strings.TrimSpace(f.Levels),
		Date:   strings.TrimSpace(f.Date),
	}
}

// ToUpdate converts a form that passed Validate into typed fields.
func (f GameForm) ToUpdate() (models.GameUpdate, error) {
	f = f.Trimmed()
	levels, err := ParseLevels(f.Levels)
	if err != nil {
		return models.GameUpdate{}, err
	}
	date, err := ParseDate(f.Date)
	if err != nil {
		return models.GameUpdate{}, err
	}
	return models.GameUpdate{Name: f.Name, Levels: levels, Date: date}, nil
}

// ParseLevels parses a level count. Values that do not fit a finite float64
// are rejected.
func ParseLevels(s string) (float64, error) {
	levels, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse levels: %w", err)
	}
	if math.IsInf(levels, 0) || math.IsNaN(levels) {
		return 0, fmt.Errorf("levels %s out of range", strconv.Quote(s))
	}
	return levels, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// ParseDate accepts the date layouts clients are known to send.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognised date " + strconv.Quote(s))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("gamelevels", func(fl validator.FieldLevel) bool {
		_, err := ParseLevels(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("gamedate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate returns every problem with the form, in a fixed order, or nil when
// the form is acceptable. hasImage reports whether an accepted image file was
// uploaded alongside the form.
func Validate(form GameForm, hasImage, imageRequired bool) []string {
	failed := map[string]bool{}
	if err := validate.Struct(form.Trimmed()); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{err.Error()}
		}
		for _, fe := range verrs {
			failed[fe.StructField()] = true
		}
	}

	var messages []string
	if failed["Name"] {
		messages = append(messages, MsgNameRequired)
	}
	if failed["Levels"] {
		messages = append(messages, MsgLevelsInvalid)
	}
	if failed["Date"] {
		messages = append(messages, MsgDateInvalid)
	}
	if imageRequired && !hasImage {
		messages = append(messages, MsgImageRequired)
	}
	return messages
}
