package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizQuestion is a multiple-choice question about a concept.
type QuizQuestion struct {
	ent.Schema
}

func (QuizQuestion) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "quiz_questions"},
	}
}

func (QuizQuestion) Fields() []ent.Field {
	return []ent.Field{
		field.Int("concept_id"),
		field.Text("question"),
		field.JSON("options", []string{}).
			Comment("Answer choices in display order"),
		field.Int("correct_answer").
			Comment("Index into options"),
		field.Text("explanation"),
		field.String("difficulty").
			Default("beginner"),
	}
}

func (QuizQuestion) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("concept_id"),
	}
}
