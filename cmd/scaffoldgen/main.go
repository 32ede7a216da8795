// Command scaffoldgen renders a scaffold design to raster files and STL
// meshes.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"ScaffoldGen/internal/compositor"
	"ScaffoldGen/internal/logger"
	"ScaffoldGen/internal/mesh"
	"ScaffoldGen/internal/params"
	"ScaffoldGen/internal/scaffold"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	"golang.org/x/image/tiff"
)

type options struct {
	paramsPath   string
	template     string
	out          string
	format       string
	stl          string
	gzip         bool
	preview      bool
	material     int
	seed         int64
	randomize    bool
	maxTriangles int
	debug        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.paramsPath, "params", "", "design file (YAML or JSON)")
	flag.StringVar(&opts.template, "template", string(params.AlignedFibers), "template id used when no design file is given")
	flag.StringVar(&opts.out, "out", "scaffold", "output path prefix")
	flag.StringVar(&opts.format, "format", "png", "raster format: png or tiff")
	flag.StringVar(&opts.stl, "stl", "", "also export meshes: ascii or binary")
	flag.BoolVar(&opts.gzip, "gzip", false, "gzip STL output")
	flag.BoolVar(&opts.preview, "preview", false, "write the tinted multi-material preview")
	flag.IntVar(&opts.material, "material", compositor.AllMaterials, "material index to export, -1 for every material")
	flag.Int64Var(&opts.seed, "seed", 0, "override the design seed")
	flag.BoolVar(&opts.randomize, "randomize", false, "randomize the template parameters")
	flag.IntVar(&opts.maxTriangles, "max-triangles", mesh.DefaultMaxTriangles, "triangle budget per mesh")
	flag.BoolVar(&opts.debug, "debug", false, "verbose console logging")
	flag.Parse()

	if err := logger.Init(opts.debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(opts); err != nil {
		logger.Log.Error("scaffoldgen failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(opts options) error {
	p, err := loadDesign(opts)
	if err != nil {
		return err
	}

	g := scaffold.NewGenerator(scaffold.WithMaxTriangles(opts.maxTriangles))
	// pin the seed so rasters, preview and meshes agree
	p.Seed = g.Seed(p)

	logger.Log.Info("Loaded design",
		zap.String("id", p.ID),
		zap.String("name", p.Name),
		zap.String("template", string(p.TemplateID)),
		zap.Int("materials", p.Materials()),
		zap.Int64("seed", p.Seed))

	if opts.preview {
		pm, err := g.RenderPreview(p)
		if err != nil {
			return err
		}
		if err := writeRaster(opts.out+"_preview", opts.format, pm); err != nil {
			return err
		}
	}

	materials := selected(p, opts.material)

	for _, m := range materials {
		pm, err := g.Render(p, compositor.Export, m)
		if err != nil {
			return err
		}
		if err := writeRaster(opts.out+suffix(p, m), opts.format, pm); err != nil {
			return err
		}
	}

	if opts.stl == "" {
		return nil
	}
	format, err := mesh.ParseFormat(opts.stl)
	if err != nil {
		return err
	}
	for _, m := range materials {
		mm, err := g.ExportMesh(p, m)
		if err != nil {
			return err
		}
		path := opts.out + suffix(p, m) + ".stl"
		if opts.gzip {
			path += ".gz"
		}
		if err := writeFile(path, func(w io.Writer) error {
			_, err := g.WriteSTL(w, mm, format, opts.gzip)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func loadDesign(opts options) (*params.ScaffoldParams, error) {
	var p *params.ScaffoldParams
	var err error
	if opts.paramsPath != "" {
		p, err = params.Load(opts.paramsPath)
	} else {
		p, err = params.New(params.TemplateID(opts.template))
	}
	if err != nil {
		return nil, err
	}

	if opts.seed != 0 {
		p.Seed = opts.seed
	}
	if opts.randomize {
		seed := p.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p = params.Randomize(p, rand.New(rand.NewSource(seed)))
	}
	return p, p.Validate()
}

func selected(p *params.ScaffoldParams, material int) []int {
	if material != compositor.AllMaterials {
		return []int{material}
	}
	all := make([]int, p.Materials())
	for i := range all {
		all[i] = i
	}
	return all
}

// suffix names per-material files when the design has more than one.
func suffix(p *params.ScaffoldParams, material int) string {
	if p.Materials() <= 1 {
		return ""
	}
	return fmt.Sprintf("_mat%d", material+1)
}

func writeRaster(base, format string, pm *gg.Pixmap) error {
	switch strings.ToLower(format) {
	case "png":
		return writeFile(base+".png", func(w io.Writer) error {
			return png.Encode(w, pm.ToImage())
		})
	case "tiff", "tif":
		return writeFile(base+".tiff", func(w io.Writer) error {
			return tiff.Encode(w, pm.ToImage(), &tiff.Options{Compression: tiff.Deflate})
		})
	default:
		return fmt.Errorf("unknown raster format %q", format)
	}
}

func writeFile(path string, encode func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Log.Info("Wrote file", zap.String("path", path))
	return nil
}
