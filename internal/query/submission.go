package query

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phenrril/bfguitars/internal/domain"
)

// Form field names shared with the storefront forms.
const (
	FieldType        = "type"
	FieldNeck        = "neck"
	FieldBody        = "body"
	FieldColor       = "color"
	FieldEngrave     = "engrave"
	FieldEngraveText = "engrave-text"

	FieldName     = "name"
	FieldFeedback = "feedback"
)

var validate = validator.New()

type diyForm struct {
	Type        string `validate:"required"`
	Neck        string `validate:"required"`
	Body        string `validate:"required"`
	Color       string `validate:"required"`
	Engrave     string `validate:"required,oneof=0 1"`
	EngraveText string `validate:"required_if=Engrave 1"`
}

type feedbackForm struct {
	Name     string `validate:"required"`
	Feedback string `validate:"required"`
}

func field(form Values, name string) string { return strings.TrimSpace(form.Get(name)) }

// ParseDIYOrder validates a DIY form. The engraving flag must be 0 or 1 and
// the engraving text is required exactly when the flag is 1; with the flag at
// 0 any submitted text is dropped.
func ParseDIYOrder(form Values) (domain.DIYOrder, error) {
	in := diyForm{
		Type:        field(form, FieldType),
		Neck:        field(form, FieldNeck),
		Body:        field(form, FieldBody),
		Color:       field(form, FieldColor),
		Engrave:     field(form, FieldEngrave),
		EngraveText: field(form, FieldEngraveText),
	}
	if err := validate.Struct(in); err != nil {
		return domain.DIYOrder{}, domain.ErrMissingParam
	}
	o := domain.DIYOrder{
		Type:         in.Type,
		NeckMaterial: in.Neck,
		BodyMaterial: in.Body,
		Color:        in.Color,
	}
	if in.Engrave == "1" {
		o.Engraving = 1
		o.EngravingText = &in.EngraveText
	}
	return o, nil
}

func InsertDIYOrder(o domain.DIYOrder) domain.Statement {
	var text any
	if o.EngravingText != nil {
		text = *o.EngravingText
	}
	return domain.Statement{
		SQL:  insertDIYOrder,
		Args: []any{o.Type, o.NeckMaterial, o.BodyMaterial, o.Color, o.Engraving, text},
	}
}

func ParseFeedback(form Values) (domain.Feedback, error) {
	in := feedbackForm{Name: field(form, FieldName), Feedback: field(form, FieldFeedback)}
	if err := validate.Struct(in); err != nil {
		return domain.Feedback{}, domain.ErrMissingParam
	}
	return domain.Feedback{Name: in.Name, Feedback: in.Feedback}, nil
}

func InsertFeedback(f domain.Feedback) domain.Statement {
	return domain.Statement{SQL: insertFeedback, Args: []any{f.Name, f.Feedback}}
}
