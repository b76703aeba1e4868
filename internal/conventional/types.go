package conventional

import "strings"

// Type is one entry in the closed set of commit types offered by the
// prompt and accepted by the validator.
type Type struct {
	Name        string `json:"name"            koanf:"name"        yaml:"name"            validate:"required,typename"`
	Description string `json:"description"     koanf:"description" yaml:"description"`
	Emoji       string `json:"emoji,omitempty" koanf:"emoji"       yaml:"emoji,omitempty"`
}

// TypeSet is an ordered list of commit types. Order is prompt order.
type TypeSet []Type

// DefaultTypes returns the built-in commit types.
func DefaultTypes() TypeSet {
	return TypeSet{
		{Name: "feat", Description: "A new feature", Emoji: "🎸"},
		{Name: "fix", Description: "A bug fix", Emoji: "🐛"},
		{Name: "docs", Description: "Documentation only changes", Emoji: "✏️"},
		{Name: "style", Description: "Markup, white-space, formatting, missing semi-colons...", Emoji: "💄"},
		{Name: "refactor", Description: "A code change that neither fixes a bug or adds a feature", Emoji: "💡"},
		{Name: "perf", Description: "A code change that improves performance", Emoji: "⚡️"},
		{Name: "test", Description: "Adding missing tests", Emoji: "💍"},
		{Name: "chore", Description: "Build process or auxiliary tool changes", Emoji: "🤖"},
		{Name: "ci", Description: "CI related changes", Emoji: "🎡"},
		{Name: "build", Description: "Changes to the build system or dependencies", Emoji: "📦"},
		{Name: "release", Description: "Create a release commit", Emoji: "🏹"},
		{Name: "revert", Description: "Revert a previous commit", Emoji: "⏪"},
	}
}

// Lookup finds a type by name. Matching is case-sensitive, as in git history.
func (s TypeSet) Lookup(name string) (Type, bool) {
	for _, t := range s {
		if t.Name == name {
			return t, true
		}
	}
	return Type{}, false
}

// Names returns the type names in order.
func (s TypeSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, t := range s {
		names = append(names, t.Name)
	}
	return names
}

// Label is the prompt label for a type, e.g. "feat: A new feature".
func (t Type) Label() string {
	if t.Description == "" {
		return t.Name
	}
	return t.Name + ": " + t.Description
}

// stripEmoji removes a leading type emoji (and the space after it) from a
// subject written with emoji enabled.
func (s TypeSet) stripEmoji(typeName, subject string) string {
	t, ok := s.Lookup(typeName)
	if !ok || t.Emoji == "" {
		return subject
	}
	if rest, found := strings.CutPrefix(subject, t.Emoji); found {
		return strings.TrimLeft(rest, " ")
	}
	return subject
}
