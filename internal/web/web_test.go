package web

import (
	"bytes"
	"html/template"
	"testing"
	"time"
	"yatube/internal/api/dto"
	"yatube/internal/model"
	"yatube/internal/pkg/consts"
	"yatube/internal/pkg/pagination"
	"yatube/internal/pkg/response"
	"yatube/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesDefined(t *testing.T) {
	tpl, err := Templates(testutils.NewMemoryObjectStore())
	require.NoError(t, err)

	for _, name := range []string{
		consts.TplIndex, consts.TplGroupList, consts.TplProfile, consts.TplPostDetail,
		consts.TplCreatePost, consts.TplFollow, consts.TplSignup, consts.TplLogin,
		consts.TplLoggedOut, consts.TplPasswordChange, consts.TplPasswordDone,
		consts.TplAdmin, consts.Tpl403, consts.Tpl404, consts.Tpl500,
	} {
		assert.NotNil(t, tpl.Lookup(name), name)
	}
}

func TestTemplates_RenderIndex(t *testing.T) {
	tpl, err := Templates(testutils.NewMemoryObjectStore())
	require.NoError(t, err)

	group := &model.Group{ID: 1, Title: "Cats", Slug: "cats"}
	posts := []*model.Post{{
		ID:      5,
		Text:    "line one\n<b>line two</b>",
		PubDate: time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC),
		Image:   "posts/cat.png",
		Author:  model.User{Username: "leo"},
		Group:   group,
	}}

	var buf bytes.Buffer
	err = tpl.ExecuteTemplate(&buf, consts.TplIndex, gin.H{
		"posts":  posts,
		"page":   pagination.Paginate(1, 10, ""),
		"viewer": response.Viewer{},
		"year":   2024,
	})
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "line one<br>&lt;b&gt;line two&lt;/b&gt;")
	assert.Contains(t, body, "9 March 2024")
	assert.Contains(t, body, `src="http://media.test/yatube/posts/cat.png"`)
	assert.Contains(t, body, `href="/group/cats/"`)
	assert.Contains(t, body, `href="/profile/leo/"`)
	assert.Contains(t, body, "Log in")
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, template.HTML("a<br>b<br>c"), linebreaks("a\r\nb\nc"))
	assert.Equal(t, template.HTML("&lt;script&gt;"), linebreaks("<script>"))
	assert.Equal(t, "1 January 2025", formatDate(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))

	errs := dto.FormErrors{}
	errs.Add("text", "Write something")
	assert.Equal(t, []string{"Write something"}, fieldErrors(errs, "text"))
	assert.Empty(t, fieldErrors(errs, "group"))
	assert.Nil(t, fieldErrors(nil, "text"))
}
