// Command bmpfilter applies a chain of filters to a 24-bit BMP image.
//
// Usage:
//
//	bmpfilter [flags] input.bmp output.bmp [-filter [args...]]...
//
// Filters run in command line order, each on the previous result:
//
//	bmpfilter in.bmp out.bmp -crop 800 600 -gs -blur 1.5
//
// An output ending in .dds is written as a DDS texture, one ending in .lz4 (or
// any output with --compress) as an LZ4-framed bitmap. Inputs ending in .dds
// are read as textures; LZ4-framed bitmaps are detected automatically.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/woozymasta/bmpfilter"
)

type options struct {
	textureFormat string
	workers       int
	mipmaps       int
	compress      bool
}

func main() {
	// glog writes to files by default; a CLI wants stderr unless told otherwise.
	_ = flag.Set("logtostderr", "true")

	if err := newRootCmd().Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bmpfilter [flags] <input> <output> [-filter [args...]]...",
		Short: "Apply filters to a 24-bit BMP image",
		Long: "Apply filters to a 24-bit BMP image.\n\nFilters:\n" + filterUsage() +
			"\n\nGlobal flags must come before the input path.",
		Example:       "  bmpfilter in.bmp out.bmp -crop 800 600 -gs -blur 1.5\n  bmpfilter --v=1 in.bmp out.dds -edge 0.1",
		Args:          cobra.MinimumNArgs(2),
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// glog refuses to log before the Go flag set reports parsed.
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := parseFilters(args[2:])
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(args[0], args[1], pipeline, opts)
		},
	}

	flags := cmd.Flags()
	// everything after the input path belongs to the filter chain
	flags.SetInterspersed(false)
	opts.register(flags)
	flags.AddGoFlagSet(flag.CommandLine)

	return cmd
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.IntVar(&o.workers, "workers", 0, "goroutines per filter (0 = one per CPU)")
	fs.BoolVar(&o.compress, "compress", false, "wrap the output bitmap in an LZ4 frame")
	fs.StringVar(&o.textureFormat, "texture-format", "bgra8",
		"DDS payload format ("+strings.Join(bmpfilter.TextureFormatNames(), ", ")+")")
	fs.IntVar(&o.mipmaps, "mipmaps", 1, "DDS mip levels (0 = full chain)")
}

func run(input, output string, pipeline bmpfilter.Pipeline, opts *options) error {
	bmpfilter.SetWorkers(opts.workers)

	img, err := readImage(input)
	if err != nil {
		return err
	}
	glog.V(1).Infof("read %s: %dx%d", input, img.Width(), img.Height())

	logged := bmpfilter.Pipeline(lo.Map(pipeline, func(f bmpfilter.Filter, _ int) bmpfilter.Filter {
		return loggedFilter{Filter: f}
	}))
	img, err = logged.Apply(img)
	if err != nil {
		return err
	}

	if err := writeImage(img, output, opts); err != nil {
		return err
	}
	glog.V(1).Infof("wrote %s: %dx%d", output, img.Width(), img.Height())

	return nil
}

func readImage(path string) (*bmpfilter.Image, error) {
	if hasExt(path, ".dds") {
		return bmpfilter.ReadTexture(path)
	}

	return bmpfilter.Read(path)
}

func writeImage(img *bmpfilter.Image, path string, opts *options) error {
	if hasExt(path, ".dds") {
		format, err := bmpfilter.ParseTextureFormat(opts.textureFormat)
		if err != nil {
			return err
		}
		return bmpfilter.WriteTexture(img, path, &bmpfilter.TextureOptions{
			Format:     format,
			MaxMipMaps: opts.mipmaps,
		})
	}

	return bmpfilter.WriteWithOptions(img, path, &bmpfilter.WriteOptions{
		Compress: opts.compress || hasExt(path, ".lz4"),
	})
}

func hasExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// loggedFilter reports each stage at verbosity 1.
type loggedFilter struct {
	bmpfilter.Filter
}

func (l loggedFilter) Apply(src *bmpfilter.Image) (*bmpfilter.Image, error) {
	start := time.Now()
	out, err := l.Filter.Apply(src)
	if err != nil {
		return nil, err
	}
	if glog.V(1) {
		glog.Infof("%s: %dx%d -> %dx%d in %s", l.Filter, src.Width(), src.Height(),
			out.Width(), out.Height(), time.Since(start))
	}

	return out, nil
}
