// Package scenes holds the five slides of the greeting card: the house, the
// garden, the livestock pen, the livestream and the Christmas wish.
//
// Every slide builds its objects in Setup from the stage's size, assets and
// environment, so a slide can be torn down and set up again any number of
// times. Sprites are looked up by path in the stage's Assets:
//
//	images/house/house.png
//	images/characters/chr_<avatar>.png
//	images/garden/<species>.png
//	images/fruits/<fruit>.png
//	images/livestock/<species>.png
//	images/trees/candy-tree.png
//	audio/gift-sound.mp3
package scenes

import (
	_ "embed"
	"fmt"

	"github.com/nhimhouse/slideshow"
)

//go:embed roster.toml
var defaultRoster []byte

// LoadDefaultRoster parses the embedded cast table.
func LoadDefaultRoster() (*slideshow.Roster, error) {
	r, err := slideshow.LoadRoster(defaultRoster)
	if err != nil {
		return nil, fmt.Errorf("default roster: %w", err)
	}
	return r, nil
}

// Deps are the collaborators shared by the slides.
type Deps struct {
	// Roster is the cast. Nil loads the embedded table.
	Roster *slideshow.Roster
}

// All returns the slides in presentation order.
func All(d Deps) ([]slideshow.Scene, error) {
	roster := d.Roster
	if roster == nil {
		var err error
		if roster, err = LoadDefaultRoster(); err != nil {
			return nil, err
		}
	}
	garden, pen := splitCast(roster)
	return []slideshow.Scene{
		NewHouse(),
		NewGarden(garden),
		NewLivestock(pen),
		NewLivestream(),
		NewChristmas(),
	}, nil
}

// splitCast divides the roster between the garden and the pen. Tree owners
// always go to the garden, where their trees are.
func splitCast(r *slideshow.Roster) (garden, pen []slideshow.CharacterProfile) {
	all := r.All()
	half := (len(all) + 1) / 2
	for i, p := range all {
		if i < half || p.TreeOwner != "" {
			garden = append(garden, p)
		} else {
			pen = append(pen, p)
		}
	}
	return garden, pen
}
