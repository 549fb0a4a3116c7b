package port

// ScriptValidator checks injected script bodies before they reach a page.
type ScriptValidator interface {
	// Validate parses source and returns a descriptive error for syntax
	// errors. It never executes the script.
	Validate(name, source string) error
}
