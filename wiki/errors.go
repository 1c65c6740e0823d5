package wiki

// These errors are user-data errors, not internal errors.  Callers
// that drive a query session should catch them per query and keep
// going.

// TopicNotFound occurs when no page resolves for a topic.
type TopicNotFound struct {
	Topic string
}

func (e *TopicNotFound) Error() string {
	return `no page found for "` + e.Topic + `"`
}

// FieldNotFound occurs when a topic's page has no extractable value
// for the requested field.  A page without an infobox also reports
// FieldNotFound: the page exists, but the field can't come out of
// it.
type FieldNotFound struct {
	Topic string
	Field string
}

func (e *FieldNotFound) Error() string {
	return `page for "` + e.Topic + `" has no ` + e.Field + ` information`
}
