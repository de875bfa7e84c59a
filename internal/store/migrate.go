package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	conceptsTable  = "concepts"
	planetsTable   = "planets"
	usersTable     = "users"
	progressTable  = "progress"
	questionsTable = "quiz_questions"
	attemptsTable  = "quiz_attempts"
)

var (
	// ConceptsColumns holds the columns for the "concepts" table.
	ConceptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647},
		{Name: "method", Type: field.TypeString, Size: 16},
		{Name: "example", Type: field.TypeString, Size: 2147483647},
	}
	// ConceptsTable holds the schema information for the "concepts" table.
	ConceptsTable = &schema.Table{
		Name:       conceptsTable,
		Columns:    ConceptsColumns,
		PrimaryKey: []*schema.Column{ConceptsColumns[0]},
	}

	// PlanetsColumns holds the columns for the "planets" table.
	PlanetsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647},
		{Name: "type", Type: field.TypeString},
		{Name: "distance_from_sun", Type: field.TypeInt},
		{Name: "image_url", Type: field.TypeString, Size: 2147483647},
	}
	// PlanetsTable holds the schema information for the "planets" table.
	PlanetsTable = &schema.Table{
		Name:       planetsTable,
		Columns:    PlanetsColumns,
		PrimaryKey: []*schema.Column{PlanetsColumns[0]},
	}

	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "username", Type: field.TypeString, Unique: true},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       usersTable,
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}

	// ProgressColumns holds the columns for the "progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeInt},
		{Name: "concept_id", Type: field.TypeInt},
		{Name: "completed", Type: field.TypeBool, Default: false},
		{Name: "completed_at", Type: field.TypeTime, Nullable: true},
		{Name: "notes", Type: field.TypeString, Nullable: true, Size: 2147483647},
	}
	// ProgressTable holds the schema information for the "progress" table.
	ProgressTable = &schema.Table{
		Name:       progressTable,
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "progress_users_progress",
				Columns:    []*schema.Column{ProgressColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "progress_concepts_progress",
				Columns:    []*schema.Column{ProgressColumns[2]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "progress_user_id_concept_id",
				Unique:  true,
				Columns: []*schema.Column{ProgressColumns[1], ProgressColumns[2]},
			},
		},
	}

	// QuizQuestionsColumns holds the columns for the "quiz_questions" table.
	QuizQuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "concept_id", Type: field.TypeInt},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "options", Type: field.TypeJSON},
		{Name: "correct_answer", Type: field.TypeInt},
		{Name: "explanation", Type: field.TypeString, Size: 2147483647},
		{Name: "difficulty", Type: field.TypeString, Default: "beginner"},
	}
	// QuizQuestionsTable holds the schema information for the "quiz_questions" table.
	QuizQuestionsTable = &schema.Table{
		Name:       questionsTable,
		Columns:    QuizQuestionsColumns,
		PrimaryKey: []*schema.Column{QuizQuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_questions_concepts_questions",
				Columns:    []*schema.Column{QuizQuestionsColumns[1]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "quizquestion_concept_id",
				Unique:  false,
				Columns: []*schema.Column{QuizQuestionsColumns[1]},
			},
		},
	}

	// QuizAttemptsColumns holds the columns for the "quiz_attempts" table.
	QuizAttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeInt},
		{Name: "question_id", Type: field.TypeInt},
		{Name: "selected_answer", Type: field.TypeInt},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "attempted_at", Type: field.TypeTime},
	}
	// QuizAttemptsTable holds the schema information for the "quiz_attempts" table.
	QuizAttemptsTable = &schema.Table{
		Name:       attemptsTable,
		Columns:    QuizAttemptsColumns,
		PrimaryKey: []*schema.Column{QuizAttemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_attempts_users_attempts",
				Columns:    []*schema.Column{QuizAttemptsColumns[1]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "quiz_attempts_quiz_questions_attempts",
				Columns:    []*schema.Column{QuizAttemptsColumns[2]},
				RefColumns: []*schema.Column{QuizQuestionsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "quizattempt_user_id_question_id",
				Unique:  false,
				Columns: []*schema.Column{QuizAttemptsColumns[1], QuizAttemptsColumns[2]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ConceptsTable,
		PlanetsTable,
		UsersTable,
		ProgressTable,
		QuizQuestionsTable,
		QuizAttemptsTable,
	}
)

func init() {
	ProgressTable.ForeignKeys[0].RefTable = UsersTable
	ProgressTable.ForeignKeys[1].RefTable = ConceptsTable
	QuizQuestionsTable.ForeignKeys[0].RefTable = ConceptsTable
	QuizAttemptsTable.ForeignKeys[0].RefTable = UsersTable
	QuizAttemptsTable.ForeignKeys[1].RefTable = QuizQuestionsTable
}
