package dispatch

// UnknownAction occurs when a table entry names an action that isn't
// in the registry.
type UnknownAction struct {
	Name string
}

func (e *UnknownAction) Error() string {
	return `action "` + e.Name + `" not registered`
}
