package planet

// Planet is a persisted planet record. Optional descriptive columns are nil when unknown.
type Planet struct {
	ID         int
	Name       string
	Climate    *string
	Terrain    *string
	Population *string
}

// Response is the wire shape of a planet; nil fields encode as JSON null
type Response struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
	Population *string `json:"population"`
}

// Serialize maps the record to its response shape without sharing memory with it
func (p Planet) Serialize() Response {
	return Response{
		ID:         p.ID,
		Name:       p.Name,
		Climate:    clone(p.Climate),
		Terrain:    clone(p.Terrain),
		Population: clone(p.Population),
	}
}

// Request carries the writable planet fields for create and full update
type Request struct {
	Name       string  `json:"name" validate:"required,max=120"`
	Climate    *string `json:"climate" validate:"omitempty,max=80"`
	Terrain    *string `json:"terrain" validate:"omitempty,max=80"`
	Population *string `json:"population" validate:"omitempty,max=80"`
}

func (r Request) toPlanet(id int) Planet {
	return Planet{
		ID:         id,
		Name:       r.Name,
		Climate:    r.Climate,
		Terrain:    r.Terrain,
		Population: r.Population,
	}
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
