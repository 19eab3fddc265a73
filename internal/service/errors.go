package service

import (
	"errors"
	"net/http"
	"strings"
	"yatube/internal/api/dto"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the author can edit this post")
	UnExpectedError  = errors.New("unexpected error, please try again later")
)

var ErrorMap = map[error]int{
	ErrUserNotFound:  http.StatusNotFound,
	ErrGroupNotFound: http.StatusNotFound,
	ErrPostNotFound:  http.StatusNotFound,
	ErrNotPostAuthor: http.StatusForbidden,
	UnExpectedError:  http.StatusInternalServerError,
}

// FormError 表单校验失败，handler 需要带着错误重新渲染表单
type FormError struct {
	Errors dto.FormErrors
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, messages := range e.Errors {
		parts = append(parts, field+": "+strings.Join(messages, " "))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func newFormError(errs dto.FormErrors) error {
	if errs.Empty() {
		return nil
	}
	return &FormError{Errors: errs}
}
