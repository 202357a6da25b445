package axon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxonPath_Parts(t *testing.T) {
	tests := []struct {
		path     AxonPath
		expected []AxonPathPart
	}{
		{
			path:     "/users/:id",
			expected: []AxonPathPart{{Type: StaticPart, Value: "/users/"}, {Type: ParameterPart, Value: "id"}},
		},
		{
			path: "/users/{id:int}/posts",
			expected: []AxonPathPart{
				{Type: StaticPart, Value: "/users/"},
				{Type: ParameterPart, Value: "id", ParamType: "int"},
				{Type: StaticPart, Value: "/posts"},
			},
		},
		{
			path:     "/files/*",
			expected: []AxonPathPart{{Type: StaticPart, Value: "/files/"}, {Type: WildcardPart, Value: "*"}},
		},
		{
			path:     "/files/{*}",
			expected: []AxonPathPart{{Type: StaticPart, Value: "/files/"}, {Type: WildcardPart, Value: "*"}},
		},
		{
			path:     "/time:now",
			expected: []AxonPathPart{{Type: StaticPart, Value: "/time:now"}},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.path.Parts())
		})
	}
}

func TestAxonPath_Params(t *testing.T) {
	p := AxonPath("/users/:id/posts/{slug}")
	assert.Equal(t, []string{"id", "slug"}, p.Params())
	assert.True(t, p.HasParam("slug"))
	assert.False(t, p.HasParam("page"))
	assert.Empty(t, AxonPath("/").Params())
}

func TestAxonPath_Shape(t *testing.T) {
	assert.Equal(t, "/users/:0", AxonPath("/users/:id").Shape())
	assert.Equal(t, AxonPath("/users/:id").Shape(), AxonPath("/users/{name}").Shape())
	assert.Equal(t, AxonPath("/users/{id:int}/*").Shape(), AxonPath("/users/:slug/{*}").Shape())
	assert.Equal(t, "/a/:0/b/:1", AxonPath("/a/{x}/b/:y").Shape())
	assert.NotEqual(t, AxonPath("/users/:id").Shape(), AxonPath("/users/search").Shape())
}

func TestAxonPath_ParamType(t *testing.T) {
	p := AxonPath("/users/{id:integer}/{slug}/:page")

	typ, ok := p.ParamType("id")
	assert.True(t, ok)
	assert.Equal(t, TypeInteger, typ)

	_, ok = p.ParamType("slug")
	assert.False(t, ok)
	_, ok = p.ParamType("page")
	assert.False(t, ok)
	_, ok = p.ParamType("missing")
	assert.False(t, ok)
}

func TestAxonPath_Validate(t *testing.T) {
	valid := []AxonPath{"/", "/users", "/users/:id", "/users/{id:int}/*"}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "path %s", p)
	}

	invalid := []AxonPath{"", "users", "/users/{id", "/users/:id/:id", "/users/:/x", "/{}"}
	for _, p := range invalid {
		err := p.Validate()
		assert.ErrorIs(t, err, ErrInvalidRoutePath, "path %q", p)
	}
}

func TestAxonPath_Format(t *testing.T) {
	colon := func(name string) string { return ":" + name }
	braces := func(name string) string { return "{" + name + "}" }

	assert.Equal(t, "/users/:id", AxonPath("/users/{id:int}").Format(colon, "*"))
	assert.Equal(t, "/users/{id}/files/*path", AxonPath("/users/:id/files/*").Format(braces, "*path"))
	assert.Equal(t, "/static", AxonPath("/static").Format(colon, "*"))
}
