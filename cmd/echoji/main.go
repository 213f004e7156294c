package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/echoji/config"
	"github.com/lixenwraith/echoji/core"
	"github.com/lixenwraith/echoji/field"
	"github.com/lixenwraith/echoji/logger"
	"github.com/lixenwraith/echoji/motion"
)

var (
	configFlag  = flag.String("config", "", "YAML config file")
	debugFlag   = flag.Bool("debug", false, "Write logs to logs/echoji.log and show the status line")
	seedFlag    = flag.Int64("seed", 0, "Replay a run with this seed, 0 draws one")
	fpsFlag     = flag.Int("fps", 0, "Frame rate override")
	muteFlag    = flag.Bool("mute", false, "Disable the release chime")
	catalogFlag = flag.Bool("catalog", false, "Print the glyph catalog and exit")
	dumpFlag    = flag.Bool("dump", false, "Print the initial field timeline as YAML and exit")
)

func main() {
	defer core.Recover()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)

	log, logFile, err := logger.Setup(logger.Options{
		Debug:  *debugFlag,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	switch {
	case *catalogFlag:
		err = printCatalog(os.Stdout, cfg.Render.BoxCells)
	case *dumpFlag:
		err = dumpTimeline(cfg, log)
	default:
		err = run(cfg, log)
	}
	if err != nil {
		log.WithError(err).Error("exit")
		fmt.Fprintf(os.Stderr, "echoji: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lays command-line overrides over the file and environment
func applyFlags(cfg *config.Config) {
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *fpsFlag > 0 {
		cfg.Render.FPS = *fpsFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *debugFlag {
		cfg.Render.Status = true
	}
}

func dumpTimeline(cfg config.Config, log *logrus.Logger) error {
	fl := field.New(cfg.FieldConfig(), field.WithLogger(log))
	fl.Start()
	defer fl.Stop()
	return motion.WriteYAML(os.Stdout, motion.BuildTimeline(fl.Snapshot()))
}
