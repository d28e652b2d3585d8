// Package flagx lets several independent flag sets share one command line.
// Each parser declares the flags it owns and receives only those arguments,
// so unknown flags from other parsers never trip flag.ContinueOnError.
package flagx

import (
	"flag"
	"strings"
)

// Owned lists the flags a parser is responsible for, without leading dashes.
// Value flags consume the following argument when it is not itself a flag;
// Bool flags never do.
type Owned struct {
	Value []string
	Bool  []string
}

func flagName(arg string) (name string, inlineValue bool) {
	name = strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true
	}
	return name, false
}

// Filter returns the subset of args that belong to o, preserving order.
// Both -name and --name spellings are recognised, as is -name=value.
// Scanning stops at a bare "--".
func (o Owned) Filter(args []string) []string {
	kinds := make(map[string]bool, len(o.Value)+len(o.Bool))
	for _, n := range o.Value {
		kinds[n] = true
	}
	for _, n := range o.Bool {
		kinds[n] = false
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, inline := flagName(arg)
		takesValue, ok := kinds[name]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if takesValue && !inline && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// The last occurrence wins; an empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(Owned{Value: []string{"c", "config"}}.Filter(args))

	return path
}
