// Package forms declares the submitted field sets of every page form and
// validates them with go-playground/validator. Handlers get back a per-field
// error map keyed by the submitted input name, ready for re-rendering.
package forms

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New(validator.WithRequiredStructEnabled())
)

func init() {
	// Report validation errors under the submitted input name, not the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

type Title struct {
	Title string `form:"title" validate:"required,max=100"`
}

type Login struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	RememberMe bool   `form:"remember_me"`
}

type Register struct {
	FirstName string `form:"first_name" validate:"required,max=50"`
	LastName  string `form:"last_name" validate:"required,max=50"`
	Username  string `form:"username" validate:"required,min=3,max=30"`
	Email     string `form:"email" validate:"required,email"`
	URL       string `form:"url" validate:"omitempty,url"`
	Age       int    `form:"age" validate:"omitempty,gte=0,lte=150"`
	Bio       string `form:"bio" validate:"max=500"`
	Password  string `form:"password" validate:"required,min=6"`
}

type Contact struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,max=2000"`
}

type Post struct {
	Tweet string `form:"tweet" validate:"required,max=280"`
}

// Decode populates dst from the request body and validates it. The returned
// map is empty on a valid submission; a non-nil error means the form could not
// be parsed at all (malformed body, wrong types).
func Decode(r *http.Request, dst interface{}) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return nil, err
	}

	err := validate.Struct(dst)
	if err == nil {
		return map[string]string{}, nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "min":
		return "Too short (minimum " + fe.Param() + ")."
	case "max":
		return "Too long (maximum " + fe.Param() + ")."
	case "gte", "lte":
		return "Out of range."
	default:
		return "Invalid value."
	}
}
