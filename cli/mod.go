// Package cli defines the Builder type, which allows one to build a CLI
// application in a modular way.
//
// 	var builder Builder
//
// 	cmd := builder.SetCommand("import")
// 	cmd.SetDescription("Import an asset manifest")
// 	cmd.SetAction(func(flags Flags) error {
// 		fmt.Printf("importing %s\n", flags.Path("file"))
// 		return nil
// 	})
//
// 	builder.Build().Run(os.Args)
//
// An implementation of the builder is free to provide primitives to create more
// complex action.
package cli

// Builder is an application builder interface. One can set properties of an
// application then build it.
type Builder interface {
	Provider

	// Build returns the application.
	Build() Application
}

// Provider defines the primitives given to an initializer to create its
// commands.
type Provider interface {
	// SetCommand creates a new command with the given name and returns its
	// builder.
	SetCommand(name string) CommandBuilder
}

// Initializer is the interface to implement for a module to set up its
// commands on an application.
type Initializer interface {
	// SetCommands is called by the application with a provider to create the
	// commands of the initializer.
	SetCommands(Provider)
}

// Application is the main interface to run the CLI.
type Application interface {
	Run(arguments []string) error
}

// CommandBuilder is a command builder interface. One can set the description
// of a command, its flags and what it should do when invoked.
type CommandBuilder interface {
	// SetDescription sets the description of the command.
	SetDescription(value string)

	// SetFlags sets the flags of the command.
	SetFlags(...Flag)

	// SetAction sets the action executed when the command is invoked.
	SetAction(Action)

	// SetSubCommand creates a subcommand of the command.
	SetSubCommand(name string) CommandBuilder
}

// Action is a function executed when a command is invoked.
type Action func(Flags) error

// Flag is an identifier for the definition of the flags.
type Flag interface {
	Flag()
}

// Flags provides the primitives to an action to read the flags.
type Flags interface {
	String(name string) string

	StringSlice(name string) []string

	Path(name string) string

	Int(name string) int

	Bool(name string) bool
}
