package play

import (
	"time"

	"github.com/abhisek/mathaxy/internal/questiongen"
)

// setReadyMsg is sent when the question set for the level has been generated.
type setReadyMsg struct {
	Questions []questiongen.Question
	Err       error
}

// timerTickMsg drives the countdown.
type timerTickMsg time.Time

// advanceMsg ends the feedback flash and shows the next question.
type advanceMsg struct{}

// levelEndMsg is sent to trigger the level end flow.
type levelEndMsg struct{}
