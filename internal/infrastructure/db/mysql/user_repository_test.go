package mysql

import (
	"reflect"
	"strings"
	"testing"
)

// Hostile input must only ever travel as a bound argument; the SET clause is
// assembled from fixed strings.
func TestBuildUserUpdate(t *testing.T) {
	cases := []struct {
		name         string
		email        string
		passwordHash string
		wantQuery    string
		wantArgs     []any
	}{
		{
			name:      "email only",
			email:     "new@test.com",
			wantQuery: "UPDATE user SET email=? WHERE id=?",
			wantArgs:  []any{"new@test.com", int64(7)},
		},
		{
			name:         "password only",
			passwordHash: "$2a$10$hash",
			wantQuery:    "UPDATE user SET password=? WHERE id=?",
			wantArgs:     []any{"$2a$10$hash", int64(7)},
		},
		{
			name:         "both fields",
			email:        "new@test.com",
			passwordHash: "$2a$10$hash",
			wantQuery:    "UPDATE user SET password=?, email=? WHERE id=?",
			wantArgs:     []any{"$2a$10$hash", "new@test.com", int64(7)},
		},
		{
			name:      "no fields is a no-op",
			wantQuery: "",
			wantArgs:  nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := buildUserUpdate(7, tc.email, tc.passwordHash)
			if query != tc.wantQuery {
				t.Fatalf("query = %q, want %q", query, tc.wantQuery)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Fatalf("args = %#v, want %#v", args, tc.wantArgs)
			}
		})
	}
}

func TestBuildUserUpdate_NeverInlinesValues(t *testing.T) {
	hostile := `x'; DROP TABLE user; --`
	query, args := buildUserUpdate(1, hostile, hostile)

	if strings.Contains(query, "DROP") {
		t.Fatalf("value leaked into the query text: %q", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 bound args, got %d", len(args))
	}
}
