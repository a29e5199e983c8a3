package commands

import (
	"context"
	"strings"
	"unicode/utf8"

	"chat4g/internal/app/domain"
	"chat4g/internal/app/ports"
)

func (c *Commands) registerBuiltin() {
	c.register(&ports.Registration{
		Name:    "help",
		Help:    "Explains a command. Syntax: {prefix}help <command name>",
		Handler: c.help,
	})
	c.register(&ports.Registration{
		Name:    "optout",
		Help:    "Tells me not to remember you. This will remove your ability to use database commands.",
		Handler: c.optout,
	})
	c.register(&ports.Registration{
		Name:    "querycommands",
		Help:    "Lists all built-in commands. This command does not increase Query Count.",
		Handler: c.queryCommands,
	})
	c.register(&ports.Registration{
		Name:      "new_prefix",
		OwnerOnly: true,
		Help:      "Changes the command prefix for this session. The prefix must be a single character and resets when I restart. Syntax: {prefix}new_prefix <new prefix>",
		Handler:   c.newPrefix,
	})
	c.register(&ports.Registration{
		Name:      "add_command",
		OwnerOnly: true,
		Help:      "Adds a new template command. Syntax: {prefix}add_command <command name> <command contents>",
		Handler: func(ctx context.Context, ev *domain.Event) *ports.Answer {
			return c.addCommand(ev, false)
		},
	})
	c.register(&ports.Registration{
		Name:      "edit_command",
		OwnerOnly: true,
		Help:      "Changes a template command, or adds one if no such command exists. Syntax: {prefix}edit_command <command name> <command contents>",
		Handler: func(ctx context.Context, ev *domain.Event) *ports.Answer {
			return c.addCommand(ev, true)
		},
	})
	c.register(&ports.Registration{
		Name:      "delete_command",
		OwnerOnly: true,
		Help:      "Deletes one or more template commands. Every name must exist or nothing is deleted. Syntax: {prefix}delete_command <command name> ...",
		Handler:   c.deleteCommand,
	})
}

func (c *Commands) help(_ context.Context, ev *domain.Event) *ports.Answer {
	switch {
	case len(ev.TextArgs) == 0:
		return ports.Reply("Hello, %s. I am a bot. You may type %squerycommands for a list of commands, or %shelp <command name> if you need help with one.",
			ev.User, c.streamer.Prefix(), c.streamer.Prefix())

	case len(ev.TextArgs) > 1:
		return ports.Reply("I can only explain one command at a time. Please try again with just one command.")
	}

	name := strings.TrimPrefix(ev.TextArgs[0], c.streamer.Prefix())
	reg, ok := c.table[name]
	if !ok {
		return ports.Reply("This command does not exist. If it is a template command, please be aware that I do not provide help for template commands.")
	}

	if reg.OwnerOnly && !c.isOwner(ev) {
		return ports.Reply("Sorry, %s, but you cannot use this command, so telling you how to use it does not make sense.", ev.User)
	}

	return ports.Reply("%s", c.renderHelp(reg.Help))
}

func (c *Commands) optout(ctx context.Context, ev *domain.Event) *ports.Answer {
	if err := c.repo.RemovePerson(ctx, ev.User); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("Okay, %s, I will not remember you. I will still use your username for template commands, as those do not require memory.", ev.User)
}

func (c *Commands) queryCommands(_ context.Context, _ *domain.Event) *ports.Answer {
	prefix := c.streamer.Prefix()

	names := c.Names()
	for i, name := range names {
		names[i] = prefix + name
	}
	return ports.Reply("The built-in commands are: %s", strings.Join(names, ", "))
}

func (c *Commands) newPrefix(_ context.Context, ev *domain.Event) *ports.Answer {
	if len(ev.TextArgs) != 1 || utf8.RuneCountInString(ev.TextArgs[0]) != 1 {
		return ports.Reply("This command requires one single-character argument.")
	}

	c.streamer.SetPrefix(ev.TextArgs[0])
	return ports.Reply("I have set your new command prefix to %q", c.streamer.Prefix())
}

// addCommand backs both add_command and edit_command; force is the only
// difference between the two.
func (c *Commands) addCommand(ev *domain.Event, force bool) *ports.Answer {
	if len(ev.TextArgs) < 2 {
		return ports.Reply("This command requires 2 arguments: the command name, and the command template.")
	}

	name := strings.TrimPrefix(ev.TextArgs[0], c.streamer.Prefix())
	if _, ok := c.table[name]; ok {
		return ports.Reply("You cannot add a command that shares a name with a built-in command.")
	}

	if _, exists := c.state.TemplateCommand(name); exists && !force {
		return ports.Reply("This command already exists. Use %sedit_command if you would like to change it.", c.streamer.Prefix())
	}

	if err := c.state.SetTemplateCommand(name, strings.Join(ev.TextArgs[1:], " ")); err != nil {
		return c.fail(ev, err)
	}
	return ports.Reply("%s added.", name)
}

func (c *Commands) deleteCommand(_ context.Context, ev *domain.Event) *ports.Answer {
	if len(ev.TextArgs) < 1 {
		return ports.Reply("This command requires at least one argument.")
	}

	names := make([]string, len(ev.TextArgs))
	for i, arg := range ev.TextArgs {
		names[i] = strings.TrimPrefix(arg, c.streamer.Prefix())
	}

	if err := c.state.DeleteTemplateCommands(names); err != nil {
		return ports.Reply("One of the commands does not exist. Nothing was deleted.")
	}
	return ports.Reply("Commands deleted: %s", strings.Join(names, ", "))
}
