package slideshow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidRoster is wrapped by every LoadRoster failure.
var ErrInvalidRoster = errors.New("slideshow: invalid roster")

// CharacterProfile is one row of the cast table.
type CharacterProfile struct {
	ID     int    `toml:"id"`
	Name   string `toml:"name"`
	Avatar int    `toml:"avatar"`
	// Messages are said when the character is clicked.
	Messages []string `toml:"messages"`
	// TreeOwner names the tree species the character owns, if any.
	TreeOwner      string   `toml:"tree_owner"`
	GiftMessages   []string `toml:"gift_messages"`
	NoGiftMessages []string `toml:"no_gift_messages"`
	// Sound is an asset path played on click.
	Sound string `toml:"sound"`
}

// AvatarPath returns the character's sprite path.
func (p CharacterProfile) AvatarPath() string {
	return fmt.Sprintf("images/characters/chr_%d.png", p.Avatar)
}

// Roster is an immutable cast table.
type Roster struct {
	profiles []CharacterProfile
	byID     map[int]int
}

type rosterFile struct {
	Character []CharacterProfile `toml:"character"`
}

// LoadRoster parses a TOML cast table. IDs must be unique and every
// character needs a name.
func LoadRoster(data []byte) (*Roster, error) {
	var f rosterFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoster, err)
	}
	r := &Roster{
		profiles: f.Character,
		byID:     make(map[int]int, len(f.Character)),
	}
	for i, p := range f.Character {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: character %d (entry %d) has no name", ErrInvalidRoster, p.ID, i)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidRoster, p.ID)
		}
		r.byID[p.ID] = i
	}
	return r, nil
}

// Len returns the number of characters.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}

// Get returns the character with the given id.
func (r *Roster) Get(id int) (CharacterProfile, bool) {
	if r == nil {
		return CharacterProfile{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return CharacterProfile{}, false
	}
	return r.profiles[i], true
}

// OwnerOf returns the first character owning trees of species.
func (r *Roster) OwnerOf(species string) (CharacterProfile, bool) {
	if r == nil || species == "" {
		return CharacterProfile{}, false
	}
	for _, p := range r.profiles {
		if p.TreeOwner == species {
			return p, true
		}
	}
	return CharacterProfile{}, false
}

// All returns a copy of every profile in file order.
func (r *Roster) All() []CharacterProfile {
	if r == nil {
		return nil
	}
	return slices.Clone(r.profiles)
}
