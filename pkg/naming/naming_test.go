package naming

import (
	"testing"
)

func TestPathToIdentifier(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/orgs/{orgId}/members/{memberId}", "OrgsByOrgIdMembersByMemberId"},
		{"/", "Root"},
		{"", "Root"},
		{"/users", "Users"},
		{"/users/{id}", "UsersById"},
		{"/users/{id}/posts", "UsersByIdPosts"},
		{"//double//slash", "DoubleSlash"},
	}

	for _, test := range tests {
		result := PathToIdentifier(test.path)
		if result != test.expected {
			t.Errorf("PathToIdentifier(%q) = %q, expected %q", test.path, result, test.expected)
		}
	}
}

func TestMethodNameFromPath(t *testing.T) {
	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{"get", "/users/{id}", "getUsersById"},
		{"GET", "/users/{id}", "getUsersById"},
		{"post", "/", "postRoot"},
		{"delete", "/orgs/{orgId}", "deleteOrgsByOrgId"},
	}

	for _, test := range tests {
		result := MethodNameFromPath(test.method, test.path)
		if result != test.expected {
			t.Errorf("MethodNameFromPath(%q, %q) = %q, expected %q", test.method, test.path, result, test.expected)
		}
	}
}

func TestSanitizeOperationID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"getUser", "getUser"},
		{"get-user", "getUser"},
		{"get_user_by_id", "getUserById"},
		{"GetUser", "getUser"},
		{"123list", "_123List"},
		{"", ""},
		{"   ", ""},
	}

	for _, test := range tests {
		result := SanitizeOperationID(test.input)
		if result != test.expected {
			t.Errorf("SanitizeOperationID(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestStripPathPrefix(t *testing.T) {
	tests := []struct {
		path     string
		prefix   string
		expected string
	}{
		{"/api/v1/users", "", "/api/v1/users"},
		{"/api/v1/users", "/api/v1", "/users"},
		{"/api/v1/users", "/other", "/api/v1/users"},
		// Pattern prefixes strip the longest matching candidate.
		{"/api/v1/users", "/api/v*", "/users"},
		{"/api/v12/users", "/api/v[0-9]*", "/users"},
		// Stripping re-anchors the remainder with a leading slash.
		{"/api/users", "/api/", "/users"},
	}

	for _, test := range tests {
		result := StripPathPrefix(test.path, test.prefix)
		if result != test.expected {
			t.Errorf("StripPathPrefix(%q, %q) = %q, expected %q", test.path, test.prefix, result, test.expected)
		}
	}
}

func TestRegistryClaim(t *testing.T) {
	reg := NewRegistry()

	if got := reg.Claim("FooBar"); got != "FooBar" {
		t.Errorf("first Claim = %q, expected FooBar", got)
	}
	if got := reg.Claim("FooBar"); got != "FooBar2" {
		t.Errorf("second Claim = %q, expected FooBar2", got)
	}
	if got := reg.Claim("FooBar"); got != "FooBar3" {
		t.Errorf("third Claim = %q, expected FooBar3", got)
	}
	if !reg.Has("FooBar2") {
		t.Error("expected FooBar2 to be claimed")
	}
}

func TestEnumIdentifier(t *testing.T) {
	tests := []struct {
		value    string
		numeric  bool
		expected string
	}{
		{"name", false, "Name"},
		{"-name", false, "NameDesc"},
		{"+name", false, "NameAsc"},
		{"-created_at", false, "CreatedAtDesc"},
		{"1st", false, "Value1St"},
		{"42", true, "Num42"},
		{"", false, "Empty"},
	}

	for _, test := range tests {
		result := EnumIdentifier(test.value, test.numeric)
		if result != test.expected {
			t.Errorf("EnumIdentifier(%q, %v) = %q, expected %q", test.value, test.numeric, result, test.expected)
		}
	}
}

func TestEnumIdentifiersUnique(t *testing.T) {
	values := []string{"foo_bar", "foo-bar", "FooBar"}
	idents := EnumIdentifiers(values, false)

	expected := []string{"FooBar", "FooBar2", "FooBar3"}
	for i := range expected {
		if idents[i] != expected[i] {
			t.Errorf("EnumIdentifiers(%v)[%d] = %q, expected %q", values, i, idents[i], expected[i])
		}
	}

	seen := map[string]bool{}
	for _, id := range idents {
		if seen[id] {
			t.Errorf("duplicate identifier %q", id)
		}
		seen[id] = true
	}

	// Deterministic for the same input sequence.
	again := EnumIdentifiers(values, false)
	for i := range idents {
		if idents[i] != again[i] {
			t.Errorf("EnumIdentifiers not deterministic: %v vs %v", idents, again)
		}
	}
}

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		pattern         string
		caseInsensitive bool
		input           string
		match           bool
	}{
		{"X-*", false, "X-Request-Id", true},
		{"X-*", false, "x-request-id", false},
		{"X-*", true, "x-request-id", true},
		{"*", false, "anything", true},
		{"/users/*", false, "/users/42", true},
		{"/users/*", false, "/users/42/posts", false},
		{"a?c", false, "abc", true},
		{"a?c", false, "abbc", false},
		{"v[0-9]", false, "v1", true},
		{"v[0-9]", false, "vx", false},
	}

	for _, test := range tests {
		re, err := CompileGlob(test.pattern, test.caseInsensitive)
		if err != nil {
			t.Errorf("CompileGlob(%q) error: %v", test.pattern, err)
			continue
		}
		if got := re.MatchString(test.input); got != test.match {
			t.Errorf("CompileGlob(%q).MatchString(%q) = %v, expected %v", test.pattern, test.input, got, test.match)
		}
	}
}
