package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// User is a registered learner.
type User struct {
	ent.Schema
}

func (User) Fields() []ent.Field {
	return []ent.Field{
		field.String("username").
			Unique().
			NotEmpty(),
		field.String("email").
			Unique().
			NotEmpty(),
		field.String("password_hash").
			Sensitive().
			Comment("bcrypt hash"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}
