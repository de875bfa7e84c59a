package catalog

import "github.com/abhisek/orbitrest/internal/store"

// Concept is a REST method lesson.
type Concept struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Method      Method `json:"method"`
	Example     string `json:"example"`
}

// Planet is the demo resource behind the CRUD tutorial. DistanceFromSun is
// in millions of kilometres.
type Planet struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	DistanceFromSun int    `json:"distanceFromSun"`
	ImageURL        string `json:"imageUrl"`
}

// PlanetInput carries every field of a new or replaced planet.
type PlanetInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	DistanceFromSun *int   `json:"distanceFromSun"`
	ImageURL        string `json:"imageUrl"`
}

// PlanetPatch is a partial update; nil fields keep their current value.
type PlanetPatch struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Type            *string `json:"type"`
	DistanceFromSun *int    `json:"distanceFromSun"`
	ImageURL        *string `json:"imageUrl"`
}

// PlanetFilter narrows ListPlanets.
type PlanetFilter struct {
	Type string
}

func conceptFromRecord(r store.Concept) Concept {
	return Concept{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Method:      Method(r.Method),
		Example:     r.Example,
	}
}

func planetFromRecord(r store.Planet) Planet {
	return Planet(r)
}

func (p Planet) record() store.Planet {
	return store.Planet(p)
}
