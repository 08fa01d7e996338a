package command

// Plan describes how one configured command string is turned into a process.
type Plan struct {
	Original  string   // The command text as configured
	Argv      []string // Program followed by its arguments; Argv[0] is looked up in PATH
	UsesShell bool     // True when Argv hands Original to a shell interpreter
}

// Program returns the executable the plan starts, or "" for an empty plan.
func (p Plan) Program() string {
	if len(p.Argv) == 0 {
		return ""
	}
	return p.Argv[0]
}
