package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Progress is a learner's state for one concept.
type Progress struct {
	ent.Schema
}

func (Progress) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "progress"},
	}
}

func (Progress) Fields() []ent.Field {
	return []ent.Field{
		field.Int("user_id"),
		field.Int("concept_id"),
		field.Bool("completed").
			Default(false),
		field.Time("completed_at").
			Optional().
			Nillable().
			Comment("Set exactly when completed is true"),
		field.Text("notes").
			Optional().
			Nillable(),
	}
}

func (Progress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "concept_id").
			Unique(),
	}
}
