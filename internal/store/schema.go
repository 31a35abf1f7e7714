package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	badgeEventsTable   = "badge_events"
	loginEventsTable   = "login_events"
)

// eventColumns are shared by every event table: a primary key, the global
// sequence and the append time.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventTable(name string, cols ...*schema.Column) *schema.Table {
	base := eventColumns()
	t := schema.NewTable(name).AddPrimary(base[0])
	for _, c := range append(base[1:], cols...) {
		t.AddColumn(c)
	}
	return t
}

var (
	sessionEvents = eventTable(sessionEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "level", Type: field.TypeInt},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "wrong_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "completed", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "failed", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "skipped", Type: field.TypeBool, Default: false},
	).AddIndex("sessionevent_session_id", false, []string{"session_id"})

	answerEvents = eventTable(answerEventsTable,
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "level", Type: field.TypeInt},
		&schema.Column{Name: "combination", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeInt},
		&schema.Column{Name: "given_answer", Type: field.TypeInt},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
		&schema.Column{Name: "timed_out", Type: field.TypeBool, Default: false},
	).AddIndex("answerevent_session_id", false, []string{"session_id"})

	badgeEvents = eventTable(badgeEventsTable,
		&schema.Column{Name: "badge_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "badge_type", Type: field.TypeString},
		&schema.Column{Name: "level", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "session_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "reason", Type: field.TypeString, Default: ""},
	).AddIndex("badgeevent_badge_type", false, []string{"badge_type"})

	loginEvents = eventTable(loginEventsTable,
		&schema.Column{Name: "day", Type: field.TypeString, Unique: true},
	)

	tables = []*schema.Table{sessionEvents, answerEvents, badgeEvents, loginEvents}
)
