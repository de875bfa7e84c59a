package catalog

import (
	"context"
	"strings"

	"github.com/abhisek/orbitrest/internal/apperr"
	"github.com/abhisek/orbitrest/internal/store"
)

// Service serves the concept catalog and the planet demo resource.
type Service struct {
	concepts store.ConceptRepo
	planets  store.PlanetRepo
}

// NewService creates a catalog service.
func NewService(concepts store.ConceptRepo, planets store.PlanetRepo) *Service {
	return &Service{concepts: concepts, planets: planets}
}

// ListConcepts returns every concept ordered by id.
func (s *Service) ListConcepts(ctx context.Context) ([]Concept, error) {
	records, err := s.concepts.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list concepts", err)
	}
	concepts := make([]Concept, 0, len(records))
	for _, r := range records {
		concepts = append(concepts, conceptFromRecord(r))
	}
	return concepts, nil
}

// GetConcept returns one concept.
func (s *Service) GetConcept(ctx context.Context, id int) (*Concept, error) {
	r, err := s.concepts.Get(ctx, id)
	if err != nil {
		return nil, apperr.Storage("get concept", err)
	}
	c := conceptFromRecord(*r)
	return &c, nil
}

// ConceptByMethod returns the first concept teaching m.
func (s *Service) ConceptByMethod(ctx context.Context, m Method) (*Concept, error) {
	concepts, err := s.ListConcepts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range concepts {
		if concepts[i].Method == m {
			return &concepts[i], nil
		}
	}
	return nil, apperr.NotFound("concept for method %s", m)
}

// ListPlanets returns planets ordered by id, optionally filtered by type.
func (s *Service) ListPlanets(ctx context.Context, f PlanetFilter) ([]Planet, error) {
	records, err := s.planets.List(ctx, strings.TrimSpace(f.Type))
	if err != nil {
		return nil, apperr.Storage("list planets", err)
	}
	planets := make([]Planet, 0, len(records))
	for _, r := range records {
		planets = append(planets, planetFromRecord(r))
	}
	return planets, nil
}

// GetPlanet returns one planet.
func (s *Service) GetPlanet(ctx context.Context, id int) (*Planet, error) {
	r, err := s.planets.Get(ctx, id)
	if err != nil {
		return nil, apperr.Storage("get planet", err)
	}
	p := planetFromRecord(*r)
	return &p, nil
}

// CreatePlanet validates in and stores a new planet.
func (s *Service) CreatePlanet(ctx context.Context, in PlanetInput) (*Planet, error) {
	p, err := in.planet()
	if err != nil {
		return nil, err
	}
	r := p.record()
	if err := s.planets.Create(ctx, &r); err != nil {
		return nil, apperr.Storage("create planet", err)
	}
	p = planetFromRecord(r)
	return &p, nil
}

// ReplacePlanet overwrites every field of planet id (PUT semantics).
func (s *Service) ReplacePlanet(ctx context.Context, id int, in PlanetInput) (*Planet, error) {
	p, err := in.planet()
	if err != nil {
		return nil, err
	}
	p.ID = id
	r := p.record()
	if err := s.planets.Update(ctx, &r); err != nil {
		return nil, apperr.Storage("replace planet", err)
	}
	return &p, nil
}

// UpdatePlanet applies a partial update (PATCH semantics).
func (s *Service) UpdatePlanet(ctx context.Context, id int, patch PlanetPatch) (*Planet, error) {
	current, err := s.GetPlanet(ctx, id)
	if err != nil {
		return nil, err
	}

	p := *current
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.DistanceFromSun != nil {
		p.DistanceFromSun = *patch.DistanceFromSun
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if err := validatePlanet(p); err != nil {
		return nil, err
	}

	r := p.record()
	if err := s.planets.Update(ctx, &r); err != nil {
		return nil, apperr.Storage("update planet", err)
	}
	return &p, nil
}

// DeletePlanet removes planet id.
func (s *Service) DeletePlanet(ctx context.Context, id int) error {
	if err := s.planets.Delete(ctx, id); err != nil {
		return apperr.Storage("delete planet", err)
	}
	return nil
}

func (in PlanetInput) planet() (Planet, error) {
	if in.DistanceFromSun == nil {
		return Planet{}, apperr.Invalid("distanceFromSun is required")
	}
	p := Planet{
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Type:            strings.TrimSpace(in.Type),
		DistanceFromSun: *in.DistanceFromSun,
		ImageURL:        strings.TrimSpace(in.ImageURL),
	}
	return p, validatePlanet(p)
}

func validatePlanet(p Planet) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.Invalid("name is required")
	case strings.TrimSpace(p.Description) == "":
		return apperr.Invalid("description is required")
	case strings.TrimSpace(p.Type) == "":
		return apperr.Invalid("type is required")
	case p.DistanceFromSun < 0:
		return apperr.Invalid("distanceFromSun must not be negative")
	case strings.TrimSpace(p.ImageURL) == "":
		return apperr.Invalid("imageUrl is required")
	}
	return nil
}
