package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasgen-dev/oasgen/pkg/openapi"
)

func loadDoc(t *testing.T, spec string) *openapi.Document {
	t.Helper()
	doc, err := openapi.LoadData([]byte(spec), "test.yaml")
	require.NoError(t, err)
	return doc
}

const usersSpec = `openapi: 3.0.3
info:
  title: Users API
  version: "1.0"
paths:
  /users/{id}:
    get:
      operationId: getUser
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/User"
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: integer
components:
  schemas:
    User:
      type: object
      required: [id]
      properties:
        id:
          type: integer
        name:
          type: string
`

func TestExtractEndToEnd(t *testing.T) {
	doc := loadDoc(t, usersSpec)

	endpoints, err := Extract(doc.Model, Options{UseOperationID: true}, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)

	ep := endpoints[0]
	assert.Equal(t, "get", ep.Method)
	assert.Equal(t, "/users/{id}", ep.Path)
	assert.Equal(t, "getUser", ep.MethodName)
	assert.Equal(t, []string{"id"}, ep.PathParams)
	require.NotNil(t, ep.Response)
	assert.Equal(t, "User", ep.Response.TypeRef)
	assert.Nil(t, ep.RequestBody)
}

func TestExtractMethodNameFromPath(t *testing.T) {
	doc := loadDoc(t, usersSpec)

	endpoints, err := Extract(doc.Model, Options{UseOperationID: false}, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "getUsersById", endpoints[0].MethodName)
}

func TestExtractStripPathPrefix(t *testing.T) {
	spec := `openapi: 3.0.3
info:
  title: T
  version: "1"
paths:
  /api/v1/users:
    get:
      responses:
        "204":
          description: no content
`
	doc := loadDoc(t, spec)

	endpoints, err := Extract(doc.Model, Options{StripPathPrefix: "/api/v1"}, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/users", endpoints[0].Path)
	assert.Equal(t, "getUsers", endpoints[0].MethodName)
}

func TestExtractContentTypeFallback(t *testing.T) {
	spec := `openapi: 3.0.3
info:
  title: T
  version: "1"
paths:
  /export:
    post:
      requestBody:
        content:
          application/xml:
            schema:
              type: string
      responses:
        "200":
          description: ok
          content:
            application/xml:
              schema:
                type: string
`
	doc := loadDoc(t, spec)

	var warnings []string
	endpoints, err := Extract(doc.Model, Options{}, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)
	require.Len(t, endpoints, 1)

	require.NotNil(t, endpoints[0].RequestBody)
	assert.Equal(t, "application/xml", endpoints[0].RequestBody.ContentType)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "application/xml")
}

func TestExtractVoidResponse(t *testing.T) {
	spec := `openapi: 3.0.3
info:
  title: T
  version: "1"
paths:
  /things/{id}:
    delete:
      responses:
        "204":
          description: deleted
`
	doc := loadDoc(t, spec)

	endpoints, err := Extract(doc.Model, Options{TrackStatusCode: true}, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	require.NotNil(t, endpoints[0].Response)
	assert.True(t, endpoints[0].Response.Void)
	assert.Equal(t, "204", endpoints[0].Response.StatusCode)

	// Without status tracking a content-less success yields no response.
	endpoints, err = Extract(doc.Model, Options{}, nil)
	require.NoError(t, err)
	assert.Nil(t, endpoints[0].Response)
}

func TestExtractHeaderIgnore(t *testing.T) {
	spec := `openapi: 3.0.3
info:
  title: T
  version: "1"
paths:
  /ping:
    get:
      parameters:
        - name: X-Request-Id
          in: header
          schema:
            type: string
        - name: Accept-Language
          in: header
          schema:
            type: string
      responses:
        "204":
          description: pong
`
	doc := loadDoc(t, spec)

	endpoints, err := Extract(doc.Model, Options{IgnoreHeaders: []string{"x-request-*"}}, nil)
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	require.Len(t, endpoints[0].HeaderParams, 1)
	assert.Equal(t, "Accept-Language", endpoints[0].HeaderParams[0].Name)

	// A single "*" drops every header.
	endpoints, err = Extract(doc.Model, Options{IgnoreHeaders: []string{"*"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, endpoints[0].HeaderParams)
}

const filterSpec = `openapi: 3.0.3
info:
  title: T
  version: "1"
paths:
  /users:
    get:
      operationId: listUsers
      responses:
        "200":
          description: ok
    post:
      operationId: createUser
      responses:
        "201":
          description: created
  /internal/debug:
    get:
      operationId: debugDump
      responses:
        "200":
          description: ok
`

func TestFilters(t *testing.T) {
	doc := loadDoc(t, filterSpec)

	tests := []struct {
		name     string
		filters  Filters
		expected []string
	}{
		{"no filters includes everything", Filters{}, []string{"debugDump", "listUsers", "createUser"}},
		{"include path glob", Filters{IncludePaths: []string{"/users"}}, []string{"listUsers", "createUser"}},
		{"exclude path glob", Filters{ExcludePaths: []string{"/internal/*"}}, []string{"listUsers", "createUser"}},
		{"include method", Filters{IncludeMethods: []string{"POST"}}, []string{"createUser"}},
		{"exclude operation id", Filters{ExcludeOperationIDs: []string{"debug*"}}, []string{"listUsers", "createUser"}},
		{"include status wildcard", Filters{IncludeStatusCodes: []string{"2xx"}}, []string{"debugDump", "listUsers", "createUser"}},
		{"include status literal", Filters{IncludeStatusCodes: []string{"201"}}, []string{"createUser"}},
		{
			"include and exclude combine",
			Filters{IncludePaths: []string{"/users"}, ExcludeMethods: []string{"get"}},
			[]string{"createUser"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			endpoints, err := Extract(doc.Model, Options{UseOperationID: true, Filters: test.filters}, nil)
			require.NoError(t, err)

			var names []string
			for _, ep := range endpoints {
				names = append(names, ep.MethodName)
			}
			assert.ElementsMatch(t, test.expected, names, "got %s", strings.Join(names, ","))
		})
	}
}
