package questionnaire

import (
	core "github.com/abhisek/perfil/internal/questionnaire"
)

// submitDoneMsg carries the outcome of an in-flight submission back to the
// event loop.
type submitDoneMsg struct {
	Result *core.Result
	Err    error
}
