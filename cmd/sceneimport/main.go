package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/hisui/glscene/config"
	"github.com/hisui/glscene/importer"
	"github.com/hisui/glscene/logger"
	"github.com/hisui/glscene/matgen"
	"github.com/hisui/glscene/resource"
	"github.com/hisui/glscene/scene"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.gltf|input.glb\n", os.Args[0])
		flag.PrintDefaults()
	}
	confFile := flag.String("config", "", "YAML config file")
	logLevel := flag.String("loglevel", "", "override log level (debug|info|warn|error)")
	noResources := flag.Bool("noresources", false, "build the scene graph and binding plan only")
	dump := flag.Bool("dump", false, "dump the created asset")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*confFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *noResources {
		cfg.Resources.Skip = true
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	if err := run(flag.Arg(0), cfg, log, *dump); err != nil {
		log.Fatal("import failed", zap.Error(err))
	}
}

func run(input string, cfg *config.Config, log *zap.Logger, dump bool) error {
	doc, err := gltf.Open(input)
	if err != nil {
		return errors.Wrapf(err, "open %q", input)
	}

	engine := scene.NewEngine()
	gen := matgen.NewGenerator()
	loader := importer.NewLoader(engine, gen, &importer.Option{
		Logger:         log,
		CastShadows:    cfg.Import.CastShadows,
		ReceiveShadows: cfg.Import.ReceiveShadows,
	})

	asset, err := loader.Create(doc)
	if err != nil {
		if !errors.Is(err, importer.ErrIncomplete) {
			return err
		}
		log.Warn("unsupported features were skipped", zap.String("input", input))
	}

	if !cfg.Resources.Skip {
		dir := cfg.Resources.Dir
		if dir == "" {
			dir = filepath.Dir(input)
		}
		res := resource.NewLoader(&resource.Option{Logger: log, Dir: dir})
		if err := res.Load(asset, doc); err != nil {
			return errors.Wrap(err, "load resources")
		}
	}

	log.Info("import finished",
		zap.Int("entities", len(asset.Entities)),
		zap.Int("renderables", engine.RenderableCount()),
		zap.Int("materials", gen.Count()),
		zap.Int("materialInstances", len(asset.MaterialInstances)),
		zap.Int("skins", len(asset.Skins)),
		zap.Int("bufferBindings", len(asset.BufferBindings)),
		zap.Int("textureBindings", len(asset.TextureBindings)))

	fmt.Printf("%s: %d entities, bounds %v .. %v\n",
		filepath.Base(input), len(asset.Entities), asset.Bounds.Min, asset.Bounds.Max)

	if dump {
		spew.Fdump(os.Stdout, asset)
	}
	return nil
}
