package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Planet is a demo resource for the playground routes.
type Planet struct {
	ent.Schema
}

func (Planet) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty(),
		field.Text("description"),
		field.String("type").
			Comment("terrestrial, gas giant or ice giant"),
		field.Int("distance_from_sun").
			Comment("Millions of kilometres"),
		field.Text("image_url"),
	}
}
