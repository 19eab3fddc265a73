package util

import (
	"testing"
	"yatube/internal/api/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateFormText(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantPost    string
		wantComment string
	}{
		{name: "single space is blank", text: " ", wantPost: "Write something", wantComment: "Write a comment"},
		{name: "empty is required", text: "", wantPost: "This field is required.", wantComment: "This field is required."},
		{name: "two spaces accepted", text: "  "},
		{name: "tab accepted", text: "\t"},
		{name: "newline accepted", text: "\n"},
		{name: "space padded text accepted", text: " hello "},
		{name: "plain text accepted", text: "Text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postErrs := ValidateForm(&dto.PostForm{Text: tt.text})
			commentErrs := ValidateForm(&dto.CommentForm{Text: tt.text})

			if tt.wantPost == "" {
				assert.Nil(t, postErrs)
				assert.Nil(t, commentErrs)
				return
			}
			assert.Equal(t, []string{tt.wantPost}, postErrs.Get("text"))
			assert.Equal(t, []string{tt.wantComment}, commentErrs.Get("text"))
		})
	}
}

func TestValidateFormGroup(t *testing.T) {
	errs := ValidateForm(&dto.PostForm{Text: "Text", Group: "abc"})
	assert.True(t, errs.Has("group"))

	errs = ValidateForm(&dto.PostForm{Text: "Text", Group: "12"})
	assert.Nil(t, errs)
}

func TestValidateFormSignup(t *testing.T) {
	form := &dto.SignupForm{
		Username:  "leo tolstoy",
		Email:     "not-an-email",
		Password1: "long-enough-password",
		Password2: "something-else",
	}

	errs := ValidateForm(form)

	assert.True(t, errs.Has("username"))
	assert.True(t, errs.Has("email"))
	assert.Equal(t, []string{"The two password fields didn't match."}, errs.Get("password2"))
	assert.False(t, errs.Has("password1"))
}

func TestValidateFormGroupSlug(t *testing.T) {
	errs := ValidateForm(&dto.GroupForm{Title: "Cats", Slug: "cats and dogs", Description: "d"})
	assert.True(t, errs.Has("slug"))

	errs = ValidateForm(&dto.GroupForm{Title: "Cats", Slug: "cats-and_dogs1", Description: "d"})
	assert.Nil(t, errs)
}
