// Package identity maps free-text person references found in AI
// analysis output to canonical contact records.
//
// AI-derived payloads refer to people loosely: positional placeholders
// ("Person_3"), first names, full names or aliases. The resolver
// accepts a fixed set of normalized key variants per contact and
// matches exactly on those; there is no fuzzy matching.
package identity

import (
	"strconv"
	"strings"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// Resolver resolves person references against a fixed contact list.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	byKey map[string]common.Contact
}

// NewResolver builds a resolver over the given contacts. For the
// contact at 1-based position i, the accepted keys are "person_{i}",
// "person {i}", the lower-cased full name, the lower-cased first name
// token and every lower-cased alias. On colliding keys the later
// contact wins, so callers should supply contacts in a stable order to
// keep resolution reproducible.
func NewResolver(contacts []common.Contact) *Resolver {
	byKey := make(map[string]common.Contact, len(contacts)*4)

	for i, contact := range contacts {
		pos := strconv.Itoa(i + 1)
		keys := []string{
			"person_" + pos,
			"person " + pos,
			normalizeKey(contact.Name),
		}
		if first := firstToken(contact.Name); first != "" {
			keys = append(keys, first)
		}
		for _, alias := range contact.Aliases {
			keys = append(keys, normalizeKey(alias))
		}

		for _, key := range keys {
			if key == "" {
				continue
			}
			byKey[key] = contact
		}
	}

	return &Resolver{byKey: byKey}
}

// Resolve returns display information for a person reference. When the
// reference matches no contact, a synthetic fallback record is returned
// instead: underscores in the reference become spaces, the initials are
// the first two characters of the raw input upper-cased and the role is
// empty. Resolve never fails; person references in AI output are
// unreliable and display must degrade gracefully.
func (r *Resolver) Resolve(ref string) common.PersonDisplay {
	if contact, ok := r.byKey[normalizeKey(ref)]; ok {
		return common.PersonDisplay{
			Name:      contact.Name,
			Initials:  Initials(contact.Name),
			Role:      contact.Role,
			AvatarKey: contact.AvatarKey,
		}
	}

	return common.PersonDisplay{
		Name:     strings.ReplaceAll(ref, "_", " "),
		Initials: fallbackInitials(ref),
	}
}

// ResolveID returns the canonical contact id for a person reference.
// Unlike Resolve it never fabricates a result: references that match no
// contact report ok=false, so graph edges only ever anchor to real
// contacts.
func (r *Resolver) ResolveID(ref string) (string, bool) {
	contact, ok := r.byKey[normalizeKey(ref)]
	if !ok {
		return "", false
	}
	return contact.ID, true
}

// Initials derives up to two upper-cased initials from a full name.
func Initials(name string) string {
	initials := make([]rune, 0, 2)
	for _, field := range strings.Fields(name) {
		first := []rune(field)[0]
		initials = append(initials, first)
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

func fallbackInitials(ref string) string {
	runes := []rune(ref)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstToken(name string) string {
	fields := strings.Fields(normalizeKey(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
