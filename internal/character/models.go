package character

// Character is a persisted character record. HomePlanetID is a nullable reference to a planet.
type Character struct {
	ID           int
	Name         string
	BirthYear    *string
	Gender       *string
	Height       *string
	SkinColor    *string
	EyeColor     *string
	HomePlanetID *int
}

// Response is the wire shape of a character. The home planet is referenced by id, never expanded.
type Response struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	BirthYear    *string `json:"birth_year"`
	Gender       *string `json:"gender"`
	Height       *string `json:"height"`
	SkinColor    *string `json:"skin_color"`
	EyeColor     *string `json:"eye_color"`
	HomePlanetID *int    `json:"home_planet_id"`
}

func (c Character) Serialize() Response {
	return Response{
		ID:           c.ID,
		Name:         c.Name,
		BirthYear:    clone(c.BirthYear),
		Gender:       clone(c.Gender),
		Height:       clone(c.Height),
		SkinColor:    clone(c.SkinColor),
		EyeColor:     clone(c.EyeColor),
		HomePlanetID: clone(c.HomePlanetID),
	}
}

// Request carries the writable character fields for create and full update
type Request struct {
	Name         string  `json:"name" validate:"required,max=120"`
	BirthYear    *string `json:"birth_year" validate:"omitempty,max=80"`
	Gender       *string `json:"gender" validate:"omitempty,max=80"`
	Height       *string `json:"height" validate:"omitempty,max=80"`
	SkinColor    *string `json:"skin_color" validate:"omitempty,max=80"`
	EyeColor     *string `json:"eye_color" validate:"omitempty,max=80"`
	HomePlanetID *int    `json:"home_planet_id" validate:"omitempty,gt=0"`
}

func (r Request) toCharacter(id int) Character {
	return Character{
		ID:           id,
		Name:         r.Name,
		BirthYear:    r.BirthYear,
		Gender:       r.Gender,
		Height:       r.Height,
		SkinColor:    r.SkinColor,
		EyeColor:     r.EyeColor,
		HomePlanetID: r.HomePlanetID,
	}
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
