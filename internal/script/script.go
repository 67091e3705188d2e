// Package script interprets batch editing scripts: one command per line,
// applied in order to a Target such as an editor session.
//
// A script is parsed completely before anything runs, so a syntax error on
// line 9 leaves the image untouched. Keywords are case-insensitive; blank
// lines and lines starting with '#' are ignored.
//
//	load input.png
//	mosaic 500
//	checkboard 400 8 255 0 0 0 0 255
//	save out.png
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/pixel-editor-mcp/internal/imaging"
)

var (
	// ErrSyntax marks a line whose keyword or arguments do not match any
	// command shape.
	ErrSyntax = fmt.Errorf("syntax error: %w", imaging.ErrInvalidArgument)

	// ErrEmptyScript is returned for a script with no commands.
	ErrEmptyScript = fmt.Errorf("script is empty: %w", imaging.ErrInvalidArgument)
)

// Target is what a script drives. *editor.Session satisfies it.
type Target interface {
	Load(path string) error
	Save(path string) error
	Undo() error
	Blur() error
	Sharpen() error
	Greyscale() error
	Sepia() error
	Dither() error
	Mosaic(seedCount int) error
	DetectEdges() error
	Equalize() error
	Crop(x, y, width, height int) error
	Rainbow(width, height int, o imaging.Orientation) error
	Checkerboard(height, squares int, first, second imaging.RGB) error
	Flag(f imaging.Flag, width int) error
}

// LineError reports the script line a failure came from.
type LineError struct {
	Line    int
	Command string
	Err     error
}

func (e *LineError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Command, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Command is one parsed script line.
type Command struct {
	Line int
	Name string
	Args []string

	apply func(Target) error
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Parse reads a whole script and validates every line. The first invalid
// line is returned as a *LineError.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		cmd, err := parseLine(line, fields)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	if len(cmds) == 0 {
		return nil, ErrEmptyScript
	}
	return cmds, nil
}

func parseLine(line int, fields []string) (Command, error) {
	v, ok := verbs[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, &LineError{Line: line, Err: fmt.Errorf("%w: unknown command %q", ErrSyntax, fields[0])}
	}
	args := fields[1:]
	cmd := Command{Line: line, Name: v.name, Args: args}
	if len(args) != v.arity {
		return cmd, &LineError{Line: line, Command: v.name, Err: v.usageError()}
	}
	apply, err := v.bind(args)
	if err != nil {
		return cmd, &LineError{Line: line, Command: v.name, Err: fmt.Errorf("%w: %v", v.usageError(), err)}
	}
	cmd.apply = apply
	return cmd, nil
}

// Run parses the script and applies it to t line by line. It stops at the
// first failing command and returns how many commands were applied before
// it. Cancelling ctx stops the run between commands.
func Run(ctx context.Context, r io.Reader, t Target) (int, error) {
	cmds, err := Parse(r)
	if err != nil {
		return 0, err
	}
	return Apply(ctx, cmds, t)
}

// Apply runs already parsed commands against t.
func Apply(ctx context.Context, cmds []Command, t Target) (int, error) {
	for i, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if cmd.apply == nil {
			return i, &LineError{Line: cmd.Line, Command: cmd.Name, Err: errors.New("command was not parsed")}
		}
		if err := cmd.apply(t); err != nil {
			return i, &LineError{Line: cmd.Line, Command: cmd.Name, Err: err}
		}
	}
	return len(cmds), nil
}

type verb struct {
	name  string
	usage string
	arity int
	bind  func(args []string) (func(Target) error, error)
}

func (v verb) usageError() error {
	return fmt.Errorf("%w: should be: %s", ErrSyntax, v.usage)
}

var verbs = map[string]verb{}

func register(v verb, aliases ...string) {
	verbs[strings.ToLower(v.name)] = v
	for _, a := range aliases {
		verbs[a] = v
	}
}

func nullary(name string, op func(Target) error) verb {
	return verb{name: name, usage: name, bind: func([]string) (func(Target) error, error) { return op, nil }}
}

func init() {
	register(nullary("blur", Target.Blur))
	register(nullary("sharpen", Target.Sharpen))
	register(nullary("greyscale", Target.Greyscale), "grayscale")
	register(nullary("sepia", Target.Sepia))
	register(nullary("dither", Target.Dither))
	register(nullary("edgeDetection", Target.DetectEdges))
	register(nullary("greyscaleEnhancement", Target.Equalize))
	register(nullary("undo", Target.Undo))

	register(verb{name: "load", usage: "load <file.jpg|png|gif|bmp>", arity: 1, bind: bindPath(Target.Load)})
	register(verb{name: "save", usage: "save <file.jpg|png|gif|bmp>", arity: 1, bind: bindPath(Target.Save)})

	register(verb{
		name: "mosaic", usage: "mosaic <seeds>", arity: 1,
		bind: func(args []string) (func(Target) error, error) {
			n, err := parseInts(args, 1)
			if err != nil {
				return nil, err
			}
			return func(t Target) error { return t.Mosaic(n[0]) }, nil
		},
	})

	register(verb{name: "rainbowH", usage: "rainbowH <width> <height>=7>", arity: 2, bind: bindRainbow(imaging.Horizontal, 1, 7)})
	register(verb{name: "rainbowV", usage: "rainbowV <width>=7> <height>", arity: 2, bind: bindRainbow(imaging.Vertical, 7, 1)})

	register(verb{
		name:  "checkboard",
		usage: "checkboard <height> <squares> <r g b> <r g b>",
		arity: 8,
		bind: func(args []string) (func(Target) error, error) {
			n, err := parseInts(args, 1, 1, 0, 0, 0, 0, 0, 0)
			if err != nil {
				return nil, err
			}
			first := imaging.RGB{n[2], n[3], n[4]}
			second := imaging.RGB{n[5], n[6], n[7]}
			if !first.Valid() || !second.Valid() {
				return nil, errors.New("colour channel above 255")
			}
			return func(t Target) error { return t.Checkerboard(n[0], n[1], first, second) }, nil
		},
	}, "checkerboard")

	register(flagVerb("norway", imaging.Norway))
	register(flagVerb("greece", imaging.Greece))
	register(flagVerb("swizerland", imaging.Switzerland), "switzerland")

	register(verb{
		name: "imagecropping", usage: "imagecropping <x> <y> <width> <height>", arity: 4,
		bind: func(args []string) (func(Target) error, error) {
			n, err := parseInts(args, 0, 0, 1, 1)
			if err != nil {
				return nil, err
			}
			return func(t Target) error { return t.Crop(n[0], n[1], n[2], n[3]) }, nil
		},
	}, "crop")
}

func bindPath(op func(Target, string) error) func([]string) (func(Target) error, error) {
	return func(args []string) (func(Target) error, error) {
		path := args[0]
		if _, err := imaging.FormatFromPath(path); err != nil {
			return nil, err
		}
		return func(t Target) error { return op(t, path) }, nil
	}
}

func bindRainbow(o imaging.Orientation, minW, minH int) func([]string) (func(Target) error, error) {
	return func(args []string) (func(Target) error, error) {
		n, err := parseInts(args, minW, minH)
		if err != nil {
			return nil, err
		}
		return func(t Target) error { return t.Rainbow(n[0], n[1], o) }, nil
	}
}

func flagVerb(name string, f imaging.Flag) verb {
	minWidth, _ := imaging.MinFlagWidth(f)
	return verb{
		name:  name,
		usage: fmt.Sprintf("%s <width>=%d>", name, minWidth),
		arity: 1,
		bind: func(args []string) (func(Target) error, error) {
			n, err := parseInts(args, minWidth)
			if err != nil {
				return nil, err
			}
			return func(t Target) error { return t.Flag(f, n[0]) }, nil
		},
	}
}

// parseInts converts args to integers, each at least the matching minimum.
func parseInts(args []string, mins ...int) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", a)
		}
		if n < mins[i] {
			return nil, fmt.Errorf("%d is below %d", n, mins[i])
		}
		out[i] = n
	}
	return out, nil
}
