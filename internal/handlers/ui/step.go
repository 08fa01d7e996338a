package ui

import (
	"fmt"
	"io"

	"github.com/AntonioJCosta/sacr/internal/core/services/aliasrun"
)

// StepAnnouncer returns a start hook that prints "[k/N] command" to w.
func StepAnnouncer(w io.Writer) func(aliasrun.Step) {
	return func(s aliasrun.Step) {
		fmt.Fprintf(w, "%s %s\n", StepColor(fmt.Sprintf("[%d/%d]", s.Index, s.Total)), AliasCmdColor(s.Command))
	}
}
