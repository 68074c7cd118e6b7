// Package seed loads the bundled planets and characters into an empty or partially filled catalog.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/shared/validation"
)

//go:embed data/catalog.json
var bundledCatalog []byte

type PlanetStore interface {
	GetByName(ctx context.Context, name string, tx *database.Tx) (*planet.Planet, error)
	Create(ctx context.Context, p planet.Planet, tx *database.Tx) (*planet.Planet, error)
}

type CharacterStore interface {
	GetByName(ctx context.Context, name string, tx *database.Tx) (*character.Character, error)
	Create(ctx context.Context, c character.Character, tx *database.Tx) (*character.Character, error)
}

type characterEntry struct {
	Name       string  `json:"name" validate:"required,max=120"`
	BirthYear  *string `json:"birth_year" validate:"omitempty,max=80"`
	Gender     *string `json:"gender" validate:"omitempty,max=80"`
	Height     *string `json:"height" validate:"omitempty,max=80"`
	SkinColor  *string `json:"skin_color" validate:"omitempty,max=80"`
	EyeColor   *string `json:"eye_color" validate:"omitempty,max=80"`
	HomePlanet *string `json:"home_planet" validate:"omitempty,max=120"`
}

type Catalog struct {
	Planets    []planet.Request `json:"planets"`
	Characters []characterEntry `json:"characters"`
}

type Result struct {
	PlanetsCreated    int
	CharactersCreated int
}

type Seeder struct {
	db         *database.DB
	planets    PlanetStore
	characters CharacterStore
	logger     *slog.Logger
}

func NewSeeder(db *database.DB, planets PlanetStore, characters CharacterStore, logger *slog.Logger) *Seeder {
	return &Seeder{
		db:         db,
		planets:    planets,
		characters: characters,
		logger:     logger,
	}
}

// Bundled returns the catalog shipped with the binary
func Bundled() (Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(bundledCatalog, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("failed to decode bundled catalog: %w", err)
	}
	return catalog, nil
}

// Run inserts every planet and character that is not already present by name, in one transaction
func (s *Seeder) Run(ctx context.Context, catalog Catalog) (Result, error) {
	logger := s.logger.With("component", "seed", "operation", "run")
	logger.Info("Seeding catalog", "planets", len(catalog.Planets), "characters", len(catalog.Characters))

	var result Result
	err := s.db.WithTx(ctx, logger, func(tx *database.Tx) error {
		planetIDs := make(map[string]int, len(catalog.Planets))

		for _, req := range catalog.Planets {
			if err := validation.Struct(req); err != nil {
				return fmt.Errorf("planet %q: %w", req.Name, err)
			}

			p, created, err := s.ensurePlanet(ctx, tx, req)
			if err != nil {
				return err
			}
			planetIDs[p.Name] = p.ID
			if created {
				result.PlanetsCreated++
			}
		}

		for _, entry := range catalog.Characters {
			if err := validation.Struct(entry); err != nil {
				return fmt.Errorf("character %q: %w", entry.Name, err)
			}

			created, err := s.ensureCharacter(ctx, tx, entry, planetIDs)
			if err != nil {
				return err
			}
			if created {
				result.CharactersCreated++
			}
		}

		return nil
	})
	if err != nil {
		logger.Error("Seeding failed", "error", err)
		return Result{}, err
	}

	logger.Info("Catalog seeded",
		"planets_created", result.PlanetsCreated,
		"characters_created", result.CharactersCreated,
	)
	return result, nil
}

func (s *Seeder) ensurePlanet(ctx context.Context, tx *database.Tx, req planet.Request) (*planet.Planet, bool, error) {
	existing, err := s.planets.GetByName(ctx, req.Name, tx)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errors.ErrorTypeNotFound) {
		return nil, false, err
	}

	created, err := s.planets.Create(ctx, planet.Planet{
		Name:       req.Name,
		Climate:    req.Climate,
		Terrain:    req.Terrain,
		Population: req.Population,
	}, tx)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (s *Seeder) ensureCharacter(ctx context.Context, tx *database.Tx, entry characterEntry, planetIDs map[string]int) (bool, error) {
	_, err := s.characters.GetByName(ctx, entry.Name, tx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, errors.ErrorTypeNotFound) {
		return false, err
	}

	c := character.Character{
		Name:      entry.Name,
		BirthYear: entry.BirthYear,
		Gender:    entry.Gender,
		Height:    entry.Height,
		SkinColor: entry.SkinColor,
		EyeColor:  entry.EyeColor,
	}

	if entry.HomePlanet != nil {
		id, ok := planetIDs[*entry.HomePlanet]
		if !ok {
			return false, errors.Validationf("character %q references unknown planet %q", entry.Name, *entry.HomePlanet)
		}
		c.HomePlanetID = &id
	}

	if _, err := s.characters.Create(ctx, c, tx); err != nil {
		return false, err
	}
	return true, nil
}
