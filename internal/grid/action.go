package grid

// ActionKind names a row-level user action.
type ActionKind string

const (
	ActionView   ActionKind = "view"
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
	ActionSelect ActionKind = "select"
)

// Action is emitted to the collaborator that owns navigation and dialogs.
type Action struct {
	Kind     ActionKind
	RecordID string
}

func (a Action) String() string {
	return string(a.Kind) + " " + a.RecordID
}
