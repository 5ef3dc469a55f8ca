package catalog

// DraftMode tells a submit whether it will create a new record or update an
// existing one. It is derived from the draft id in exactly one place so the
// sentinel comparison never leaks into calling code.
type DraftMode struct {
	// Edit is true when the draft was loaded from an existing record.
	Edit bool
	// ID is the record to update. Only meaningful when Edit is true.
	ID int
}

// DraftModeOf derives the mode for a draft with the given id.
func DraftModeOf(id int) DraftMode {
	if id == SentinelID {
		return DraftMode{}
	}
	return DraftMode{Edit: true, ID: id}
}
