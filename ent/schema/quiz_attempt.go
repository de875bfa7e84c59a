package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttempt records one submitted answer.
type QuizAttempt struct {
	ent.Schema
}

func (QuizAttempt) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "quiz_attempts"},
	}
}

func (QuizAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.Int("user_id"),
		field.Int("question_id"),
		field.Int("selected_answer"),
		field.Bool("is_correct"),
		field.Time("attempted_at").
			Default(time.Now).
			Immutable(),
	}
}

func (QuizAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "question_id"),
	}
}
