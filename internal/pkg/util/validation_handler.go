package util

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"yatube/internal/api/dto"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	slugRegex     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)
)

func init() {
	validate = validator.New()

	// 错误信息按表单字段名归类
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("notspace", func(fl validator.FieldLevel) bool {
		// 只拒绝恰好一个空格
		return fl.Field().String() != " "
	})
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
}

// ValidateForm 校验表单，返回按字段归类的错误；校验通过返回 nil
func ValidateForm(form any) dto.FormErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	formErrors := dto.FormErrors{}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		formErrors.Add(dto.NonFieldErrors, err.Error())
		return formErrors
	}

	for _, fe := range vErrs {
		formErrors.Add(fe.Field(), fieldMessage(fe))
	}
	return formErrors
}

// blankMessages 各表单自己的空白提示
var blankMessages = map[string]string{
	"PostForm.Text":    "Write something",
	"CommentForm.Text": "Write a comment",
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notspace":
		if msg, ok := blankMessages[fe.StructNamespace()]; ok {
			return msg
		}
		return "This field must not be blank."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "numeric":
		return "Select a valid choice. That choice is not one of the available choices."
	case "eqfield":
		return "The two password fields didn't match."
	case "slug":
		return "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}
