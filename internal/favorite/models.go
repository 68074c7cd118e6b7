package favorite

import (
	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/user"
)

type TargetKind string

const (
	// TargetNone only appears on rows read back without a target; the write path never produces it
	TargetNone      TargetKind = ""
	TargetPlanet    TargetKind = "planet"
	TargetCharacter TargetKind = "character"
)

// Target is what a favorite points at: one planet or one character
type Target struct {
	Kind TargetKind
	ID   int
}

func PlanetTarget(id int) Target {
	return Target{Kind: TargetPlanet, ID: id}
}

func CharacterTarget(id int) Target {
	return Target{Kind: TargetCharacter, ID: id}
}

// PlanetID returns the planet_id column value
func (t Target) PlanetID() *int {
	if t.Kind != TargetPlanet {
		return nil
	}
	id := t.ID
	return &id
}

// CharacterID returns the character_id column value
func (t Target) CharacterID() *int {
	if t.Kind != TargetCharacter {
		return nil
	}
	id := t.ID
	return &id
}

func targetFromColumns(planetID, characterID *int) (Target, error) {
	switch {
	case planetID != nil && characterID != nil:
		return Target{}, errors.Integrityf("favorite references both planet %d and character %d", *planetID, *characterID)
	case planetID != nil:
		return PlanetTarget(*planetID), nil
	case characterID != nil:
		return CharacterTarget(*characterID), nil
	default:
		return Target{}, nil
	}
}

// Favorite is a persisted bookmark of a planet or character by a user
type Favorite struct {
	ID     int
	UserID int
	Target Target
}

func NewPlanetFavorite(userID, planetID int) (Favorite, error) {
	return newFavorite(userID, PlanetTarget(planetID))
}

func NewCharacterFavorite(userID, characterID int) (Favorite, error) {
	return newFavorite(userID, CharacterTarget(characterID))
}

func newFavorite(userID int, target Target) (Favorite, error) {
	if userID <= 0 {
		return Favorite{}, errors.Validationf("user id must be positive, got %d", userID)
	}
	if target.ID <= 0 {
		return Favorite{}, errors.Validationf("%s id must be positive, got %d", target.Kind, target.ID)
	}
	return Favorite{UserID: userID, Target: target}, nil
}

// Detail is a favorite together with the records its foreign keys resolve to
type Detail struct {
	Favorite
	User      *user.User
	Planet    *planet.Planet
	Character *character.Character
}

type Response struct {
	ID        int                 `json:"id"`
	UserEmail string              `json:"user_email"`
	Planet    *planet.Response    `json:"planet"`
	Character *character.Response `json:"character"`
}

// Serialize expands the owning user to its email and the target to its own serialization.
// A missing or mismatched user or target is an integrity error and produces no output.
func (d Detail) Serialize() (Response, error) {
	if d.User == nil {
		return Response{}, errors.Integrityf("favorite %d references missing user %d", d.ID, d.UserID)
	}
	if d.User.ID != d.UserID {
		return Response{}, errors.Integrityf("favorite %d resolved to user %d, expected %d", d.ID, d.User.ID, d.UserID)
	}

	resp := Response{
		ID:        d.ID,
		UserEmail: d.User.Email,
	}

	switch d.Target.Kind {
	case TargetPlanet:
		if d.Planet == nil || d.Planet.ID != d.Target.ID {
			return Response{}, errors.Integrityf("favorite %d references missing planet %d", d.ID, d.Target.ID)
		}
		p := d.Planet.Serialize()
		resp.Planet = &p
	case TargetCharacter:
		if d.Character == nil || d.Character.ID != d.Target.ID {
			return Response{}, errors.Integrityf("favorite %d references missing character %d", d.ID, d.Target.ID)
		}
		c := d.Character.Serialize()
		resp.Character = &c
	}

	return resp, nil
}
