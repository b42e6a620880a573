package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rollcube/pkg/engine/input"
	"rollcube/pkg/engine/logger"
	"rollcube/pkg/engine/terminal"
	"rollcube/pkg/game/audio"
	"rollcube/pkg/game/config"
	"rollcube/pkg/game/gameplay"
	"rollcube/pkg/game/generator"
	"rollcube/pkg/game/i18n"
	"rollcube/pkg/game/levels"
	"rollcube/pkg/game/renderer"
	ebitenrenderer "rollcube/pkg/game/renderer/ebiten"
	"rollcube/pkg/game/renderer/tui"
)

// loadPack returns count generated levels, the pack at path, or the built-in
// pack, in that order of preference
func loadPack(path string, count int, seed int64) (levels.Pack, error) {
	switch {
	case count > 0:
		opts := generator.DefaultOptions()
		opts.Seed = seed
		return generator.GeneratePack(count, opts)
	case path != "":
		return levels.LoadPackFile(path)
	default:
		return levels.DefaultPack()
	}
}

// newSounds starts the speaker, falling back to silence when no audio device
// is available
func newSounds(cfg *config.Config) (audio.Player, func()) {
	if !cfg.Sound {
		return audio.NopPlayer{}, func() {}
	}
	sm := audio.NewSoundManager()
	if err := sm.Initialize(); err != nil {
		logger.Log.WithError(err).Warn("Sound disabled")
		return audio.NopPlayer{}, func() {}
	}
	return sm, sm.Cleanup
}

// newRenderer picks the backend named in the config
func newRenderer(cfg *config.Config) renderer.Renderer {
	switch cfg.Renderer {
	case "tui":
		return tui.New()
	default:
		return ebitenrenderer.New(cfg)
	}
}

func main() {
	startLevel := flag.Int("level", 1, "starting level number")
	packPath := flag.String("levels", "", "level pack YAML file (default: built-in pack)")
	configPath := flag.String("config", config.DefaultPath(), "config file")
	rendererName := flag.String("renderer", "", "renderer to use: ebiten or tui (default from config)")
	debug := flag.Bool("debug", false, "log at debug level")
	generate := flag.Int("generate", 0, "play this many generated sandbox levels instead of a pack")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for -generate")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logLevel := ""
	if *debug {
		logLevel = "debug"
	}
	cfg.OverrideForSession(*rendererName, logLevel)
	config.SetCurrent(cfg)

	// the terminal renderer owns the screen, so diagnostics go to a file
	var logOut *os.File
	if cfg.Renderer == "tui" && terminal.IsInteractive() {
		logOut, err = os.OpenFile("rollcube.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer logOut.Close()
	}
	if logOut != nil {
		err = logger.Configure(cfg.LogLevel, logOut)
	} else {
		err = logger.Configure(cfg.LogLevel, nil)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := input.ApplyBindings(cfg.Bindings); err != nil {
		log.Fatalf("config bindings: %v", err)
	}
	for act, codes := range input.GetBindingsByAction() {
		logger.Log.WithFields(logrus.Fields{
			"action": input.ActionName(act),
			"keys":   strings.Join(codes, ","),
		}).Debug("Key binding")
	}

	if err := i18n.Load(cfg.Locale); err != nil {
		log.Fatalf("load translations: %v", err)
	}

	pack, err := loadPack(*packPath, *generate, *seed)
	if err != nil {
		log.Fatalf("load levels: %v", err)
	}

	sounds, closeSounds := newSounds(cfg)
	defer closeSounds()

	g, err := gameplay.BuildGame(pack, *startLevel-1, cfg, sounds)
	if err != nil {
		log.Fatalf("start game: %v", err)
	}

	r := newRenderer(cfg)
	if err := r.Init(); err != nil {
		log.Fatalf("init %s renderer: %v", cfg.Renderer, err)
	}
	renderer.SetRenderer(r)

	if err := renderer.Current.Run(g); err != nil {
		log.Fatalf("%v", err)
	}
}
