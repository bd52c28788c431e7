package roster

import "strings"

const (
	UnknownGameVersion = "-"

	PositionCaptain = "Captain"
	PositionCoach   = "Coach"
	PositionPlayer  = "Player"
)

var gameVersionPriority = []string{UnknownGameVersion, "CS1.6", "CS:S", "CS:GO", "CS2"}

// NormalizeGameVersion maps the free-form game label of a record to a display
// label. Labels that cannot be told apart reliably in the source data, such as
// anything mentioning "2" or "go", are reported as unknown.
func NormalizeGameVersion(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownGameVersion
	}
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "source"):
		return "CS:S"
	case lower == "cs":
		return "CS1.6"
	case strings.Contains(lower, "2"), strings.Contains(lower, "go"):
		return UnknownGameVersion
	default:
		return value
	}
}

// GameVersion picks the display game version of a roster from its members.
func (r Roster) GameVersion() string {
	if r.IsInvalidBucket() || len(r.Players) == 0 {
		return UnknownGameVersion
	}
	seen := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		seen[NormalizeGameVersion(p.GameVersion)] = struct{}{}
	}
	for _, v := range gameVersionPriority {
		if _, ok := seen[v]; ok {
			return v
		}
	}
	return UnknownGameVersion
}

// DisplayPosition is "Captain", "Coach", both joined by a comma, or "Player".
func (p Player) DisplayPosition() string {
	positions := make([]string, 0, 2)
	if p.IsCaptain {
		positions = append(positions, PositionCaptain)
	}
	if strings.Contains(strings.ToLower(p.Position), "coach") {
		positions = append(positions, PositionCoach)
	}
	if len(positions) == 0 {
		return PositionPlayer
	}
	return strings.Join(positions, ", ")
}

func (p Player) IsCoach() bool {
	return strings.Contains(strings.ToLower(p.Position), "coach")
}

// Slugify turns an id into its URL form.
func Slugify(id string) string {
	return strings.ReplaceAll(id, " ", "_")
}

// Unslugify reverses Slugify.
func Unslugify(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}
