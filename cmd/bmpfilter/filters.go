package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/samber/lo"
	"github.com/woozymasta/bmpfilter"
)

var errUsage = errors.New("invalid arguments")

// filterSpec describes one command line filter: how many arguments it takes
// and how to build it from them.
type filterSpec struct {
	build func(args []string) (bmpfilter.Filter, error)
	usage string
	nargs int
}

var filterSpecs = map[string]filterSpec{
	"crop": {
		nargs: 2,
		usage: "-crop width height",
		build: func(args []string) (bmpfilter.Filter, error) {
			w, err := parseInt("width", args[0])
			if err != nil {
				return nil, err
			}
			h, err := parseInt("height", args[1])
			if err != nil {
				return nil, err
			}
			return ptrFilter(bmpfilter.NewCrop(w, h))
		},
	},
	"gs": {
		usage: "-gs",
		build: func([]string) (bmpfilter.Filter, error) { return bmpfilter.NewGrayscale(), nil },
	},
	"neg": {
		usage: "-neg",
		build: func([]string) (bmpfilter.Filter, error) { return bmpfilter.NewNegative(), nil },
	},
	"sharp": {
		usage: "-sharp",
		build: func([]string) (bmpfilter.Filter, error) { return bmpfilter.NewSharpen(), nil },
	},
	"edge": {
		nargs: 1,
		usage: "-edge threshold",
		build: func(args []string) (bmpfilter.Filter, error) {
			t, err := parseFloat("threshold", args[0])
			if err != nil {
				return nil, err
			}
			return ptrFilter(bmpfilter.NewEdgeDetection(t))
		},
	},
	"blur": {
		nargs: 1,
		usage: "-blur sigma",
		build: func(args []string) (bmpfilter.Filter, error) {
			s, err := parseFloat("sigma", args[0])
			if err != nil {
				return nil, err
			}
			return ptrFilter(bmpfilter.NewGaussianBlur(s))
		},
	},
	"pixel": {
		nargs: 1,
		usage: "-pixel size",
		build: func(args []string) (bmpfilter.Filter, error) {
			n, err := parseInt("size", args[0])
			if err != nil {
				return nil, err
			}
			return ptrFilter(bmpfilter.NewPixelate(n))
		},
	},
}

// parseFilters turns "-name arg... -name arg..." into a pipeline, keeping the
// command line order.
func parseFilters(args []string) (bmpfilter.Pipeline, error) {
	var pipeline bmpfilter.Pipeline
	for i := 0; i < len(args); {
		name, ok := filterName(args[i])
		if !ok {
			return nil, fmt.Errorf("%w: expected a filter, got %q", errUsage, args[i])
		}
		spec, ok := filterSpecs[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown filter %q", errUsage, name)
		}

		j := i + 1
		for j < len(args) {
			if _, isName := filterName(args[j]); isName {
				break
			}
			j++
		}

		params := args[i+1 : j]
		if len(params) != spec.nargs {
			return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d (usage: %s)",
				errUsage, name, spec.nargs, len(params), spec.usage)
		}

		f, err := spec.build(params)
		if err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
		pipeline = append(pipeline, f)
		i = j
	}

	return pipeline, nil
}

// filterName reports whether arg names a filter. Negative numbers such as
// "-0.5" are arguments, not names.
func filterName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}

	r := rune(arg[1])
	if !unicode.IsLetter(r) {
		return "", false
	}

	return arg[1:], true
}

// filterUsage lists the filters for the help text.
func filterUsage() string {
	lines := lo.Map(lo.Keys(filterSpecs), func(name string, _ int) string {
		return "  " + filterSpecs[name].usage
	})
	slices.Sort(lines)
	return strings.Join(lines, "\n")
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", errUsage, name, s)
	}

	return n, nil
}

func parseFloat(name, s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", errUsage, name, s)
	}

	return float32(v), nil
}

// ptrFilter converts a typed constructor result into a Filter without
// leaking a typed nil on error.
func ptrFilter[T bmpfilter.Filter](f T, err error) (bmpfilter.Filter, error) {
	if err != nil {
		return nil, err
	}

	return f, nil
}
