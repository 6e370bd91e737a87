package identity

import (
	"testing"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

func testContacts() []common.Contact {
	return []common.Contact{
		{ID: "c1", Name: "Alice Johnson", Role: "CTO", AvatarKey: "avatars/c1.png"},
		{ID: "c2", Name: "Bob Miller", Role: "Engineer", Aliases: []string{"Bobby"}},
		{ID: "c3", Name: "Carla Diaz"},
	}
}

func TestResolveKeyVariants(t *testing.T) {
	r := NewResolver(testContacts())

	tests := []struct {
		name     string
		ref      string
		wantName string
		wantRole string
	}{
		{
			name:     "positional underscore",
			ref:      "Person_1",
			wantName: "Alice Johnson",
			wantRole: "CTO",
		},
		{
			name:     "positional with space",
			ref:      "person 2",
			wantName: "Bob Miller",
			wantRole: "Engineer",
		},
		{
			name:     "full name case insensitive",
			ref:      "ALICE JOHNSON",
			wantName: "Alice Johnson",
			wantRole: "CTO",
		},
		{
			name:     "first name token",
			ref:      "carla",
			wantName: "Carla Diaz",
		},
		{
			name:     "alias",
			ref:      "bobby",
			wantName: "Bob Miller",
			wantRole: "Engineer",
		},
		{
			name:     "surrounding whitespace",
			ref:      "  person_3  ",
			wantName: "Carla Diaz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.ref)
			if got.Name != tt.wantName {
				t.Errorf("Resolve(%q).Name = %q, want %q", tt.ref, got.Name, tt.wantName)
			}
			if got.Role != tt.wantRole {
				t.Errorf("Resolve(%q).Role = %q, want %q", tt.ref, got.Role, tt.wantRole)
			}
		})
	}
}

func TestResolveFallback(t *testing.T) {
	r := NewResolver(testContacts())

	tests := []struct {
		name         string
		ref          string
		wantName     string
		wantInitials string
	}{
		{
			name:         "unknown placeholder",
			ref:          "Person_9",
			wantName:     "Person 9",
			wantInitials: "PE",
		},
		{
			name:         "unknown name",
			ref:          "zoe",
			wantName:     "zoe",
			wantInitials: "ZO",
		},
		{
			name:         "single character",
			ref:          "x",
			wantName:     "x",
			wantInitials: "X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.ref)
			if got.Name != tt.wantName {
				t.Errorf("Resolve(%q).Name = %q, want %q", tt.ref, got.Name, tt.wantName)
			}
			if got.Initials != tt.wantInitials {
				t.Errorf("Resolve(%q).Initials = %q, want %q", tt.ref, got.Initials, tt.wantInitials)
			}
			if got.Role != "" {
				t.Errorf("Resolve(%q).Role = %q, want empty", tt.ref, got.Role)
			}
		})
	}
}

func TestResolveID(t *testing.T) {
	r := NewResolver(testContacts())

	id, ok := r.ResolveID("person_2")
	if !ok || id != "c2" {
		t.Errorf("ResolveID(person_2) = (%q, %v), want (c2, true)", id, ok)
	}

	if id, ok := r.ResolveID("Person_42"); ok {
		t.Errorf("ResolveID(Person_42) = (%q, true), want miss", id)
	}
}

func TestResolveCollisionLastWriteWins(t *testing.T) {
	contacts := []common.Contact{
		{ID: "c1", Name: "Alex Carter"},
		{ID: "c2", Name: "Alex Romero"},
	}
	r := NewResolver(contacts)

	// both contacts produce the "alex" first-name key; list order decides
	id, ok := r.ResolveID("alex")
	if !ok || id != "c2" {
		t.Errorf("ResolveID(alex) = (%q, %v), want (c2, true)", id, ok)
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(testContacts())

	first := r.Resolve("person_1")
	second := r.Resolve("person_1")
	if first != second {
		t.Errorf("Resolve not idempotent: %+v vs %+v", first, second)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two names", in: "Alice Johnson", want: "AJ"},
		{name: "single name", in: "alice", want: "A"},
		{name: "three names takes first two", in: "Ana Maria Lopez", want: "AM"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.in); got != tt.want {
				t.Errorf("Initials(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
