package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasgen-dev/oasgen/pkg/ir"
)

func TestMethodArgs(t *testing.T) {
	tests := []struct {
		name     string
		ep       ir.Endpoint
		expected string
	}{
		{
			name:     "no arguments",
			ep:       ir.Endpoint{},
			expected: "",
		},
		{
			name: "path params first",
			ep: ir.Endpoint{
				PathParams:  []string{"orgId", "memberId"},
				RequestBody: &ir.RequestBody{Required: true, TypeRef: "Member"},
			},
			expected: "orgId: string | number, memberId: string | number, body: Member",
		},
		{
			name: "required body then optional query",
			ep: ir.Endpoint{
				RequestBody: &ir.RequestBody{Required: true, TypeRef: "Pet"},
				QueryParams: []ir.Param{{Name: "limit"}},
			},
			expected: "body: Pet, query?: { limit?: string | number | boolean }",
		},
		{
			name: "required query before optional body",
			ep: ir.Endpoint{
				RequestBody: &ir.RequestBody{Required: false, TypeRef: "Pet"},
				QueryParams: []ir.Param{{Name: "filter", Required: true}},
			},
			expected: "query: { filter: string | number | boolean }, body?: Pet",
		},
		{
			name: "optional body and optional query keep declaration order",
			ep: ir.Endpoint{
				RequestBody: &ir.RequestBody{Required: false, TypeRef: "Pet"},
				QueryParams: []ir.Param{{Name: "limit"}},
			},
			expected: "body?: Pet, query?: { limit?: string | number | boolean }",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, MethodArgs(test.ep))
		})
	}
}

func TestCallArgsMatchesMethodArgsOrder(t *testing.T) {
	ep := ir.Endpoint{
		PathParams:  []string{"id"},
		RequestBody: &ir.RequestBody{Required: false, TypeRef: "Pet"},
		QueryParams: []ir.Param{{Name: "filter", Required: true}},
	}
	assert.Equal(t, "id, query, body", CallArgs(ep))
	assert.Equal(t, "id: string | number, query: { filter: string | number | boolean }, body?: Pet", MethodArgs(ep))
}
