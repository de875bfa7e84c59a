package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Concept is one HTTP method lesson.
type Concept struct {
	ent.Schema
}

func (Concept) Fields() []ent.Field {
	return []ent.Field{
		field.String("title").
			NotEmpty(),
		field.Text("description"),
		field.String("method").
			MaxLen(16).
			Comment("GET, POST, PUT, PATCH or DELETE"),
		field.Text("example").
			Comment("Sample request shown with the lesson"),
	}
}
