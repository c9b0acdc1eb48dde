package cliconfig

// PrintToken separates global command arguments from print subcommand arguments.
const PrintToken = "print"

// SplitCommandArgs splits pass-through arguments at the first "print" token.
// Arguments before it are global, arguments after it belong to the print
// subcommand. Without a "print" token every argument is global.
func SplitCommandArgs(args []string) (global, printArgs []string) {
	for i, a := range args {
		if a == PrintToken {
			return clone(args[:i]), clone(args[i+1:])
		}
	}
	return clone(args), nil
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
