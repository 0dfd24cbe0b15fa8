package task

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Template is a recurring or one-off rule that spawns Task instances at
// rollover. Deleting a template cascades to every task it spawned.
type Template struct {
	ID            string `json:"id" validate:"required"`
	Title         string `json:"title" validate:"required,min=1,max=255"`
	Description   string `json:"description,omitempty" validate:"max=2000"`
	DueHour       int    `json:"dueHour" validate:"gte=-1,lte=23"`
	IsAnytime     bool   `json:"isAnytime"`
	IsRecurring   bool   `json:"isRecurring"`
	RecurringDays []int  `json:"recurringDays" validate:"dive,gte=0,lte=6"`
}

var validate = validator.New()

// NewTemplate builds a validated template with a fresh id.
func NewTemplate(title, description string, dueHour int, recurring bool, recurringDays []int) (Template, error) {
	tpl := Template{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(title),
		Description:   strings.TrimSpace(description),
		DueHour:       dueHour,
		IsAnytime:     dueHour == AnytimeHour,
		IsRecurring:   recurring,
		RecurringDays: slices.Clone(recurringDays),
	}
	if tpl.RecurringDays == nil {
		tpl.RecurringDays = []int{}
	}
	if err := tpl.Validate(); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (tpl Template) Validate() error {
	if err := validate.Struct(tpl); err != nil {
		var msgs []string
		for _, fe := range err.(validator.ValidationErrors) {
			msgs = append(msgs, fmt.Sprintf("field %q failed rule %q", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("invalid template: %s", strings.Join(msgs, "; "))
	}
	if tpl.IsRecurring && len(tpl.RecurringDays) == 0 {
		return fmt.Errorf("invalid template: recurring template needs at least one weekday")
	}
	return nil
}

// AppliesOn reports whether the template spawns a task on the given weekday.
func (tpl Template) AppliesOn(weekday int) bool {
	if !tpl.IsRecurring {
		return true
	}
	return slices.Contains(tpl.RecurringDays, weekday)
}
