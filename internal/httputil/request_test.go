package httputil_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kassenbuch/backend/internal/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFilter struct {
	Name     string `form:"name" filterField:"false"`
	Archived bool   `form:"archived"`
	Note     string `form:"note"`
}

func TestGetURLFields(t *testing.T) {
	u, err := url.Parse("https://example.com/v1/accounts?name=Giro&archived=false")
	require.NoError(t, err)

	queryFields, setFields := httputil.GetURLFields(u, testFilter{})

	// name is excluded from the query fields via filterField
	assert.Equal(t, []any{"Archived"}, queryFields)
	assert.Equal(t, []string{"Name", "Archived"}, setFields)
}

type testBody struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

func TestBindData(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"Valid", `{"name": "Girokonto"}`, nil},
		{"Empty body", "", httputil.ErrRequestBodyEmpty},
		{"Unparseable", `{"name": `, httputil.ErrInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("POST", "https://example.com/", strings.NewReader(tt.body))

			var target testBody
			err := httputil.BindData(c, &target)

			if tt.err == nil {
				assert.NoError(t, err)
				assert.Equal(t, "Girokonto", target.Name)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestBindDataTypeError(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "https://example.com/", strings.NewReader(`{"name": false}`))

	var target testBody
	err := httputil.BindData(c, &target)
	require.Error(t, err)

	// Type errors are passed through so callers can report the field
	assert.Contains(t, err.Error(), "name")
}

func TestGetBodyFields(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("PATCH", "https://example.com/", strings.NewReader(`{"name": "Girokonto"}`))

	fields, err := httputil.GetBodyFields(c, testBody{})
	require.NoError(t, err)
	assert.Equal(t, []any{"Name"}, fields)

	// The body is still readable after GetBodyFields
	var target testBody
	require.NoError(t, httputil.BindData(c, &target))
	assert.Equal(t, "Girokonto", target.Name)
}
