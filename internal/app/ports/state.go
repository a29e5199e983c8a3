package ports

// StatePort is the persisted per-streamer configuration: the template-command
// mapping plus the reminders block carried by the default schema. Mutations
// persist the whole object before returning.
type StatePort interface {
	TemplateCommand(name string) (string, bool)
	TemplateCommands() map[string]string
	SetTemplateCommand(name, tmpl string) error
	// DeleteTemplateCommands removes the named commands atomically: if any
	// name is unknown the whole batch is rejected and nothing changes.
	DeleteTemplateCommands(names []string) error
	Reminders() map[string]string
}
