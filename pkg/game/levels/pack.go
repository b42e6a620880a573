package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"rollcube/pkg/engine/logger"
)

//go:embed packs
var packFS embed.FS

const defaultPackPath = "packs/default.yaml"

// Pack is an ordered list of levels
type Pack struct {
	Name   string
	Levels []Level
}

type rawLevel struct {
	Name  string   `yaml:"name"`
	Rows  []string `yaml:"rows"`
	Image string   `yaml:"image"`
}

type rawPack struct {
	Name   string     `yaml:"name"`
	Levels []rawLevel `yaml:"levels"`
}

// LoadPack decodes a YAML level pack. Image levels are read from images,
// relative to its root.
func LoadPack(data []byte, images fs.FS) (Pack, error) {
	var raw rawPack
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Pack{}, fmt.Errorf("parse level pack: %w", err)
	}
	if len(raw.Levels) == 0 {
		return Pack{}, fmt.Errorf("level pack %q has no levels", raw.Name)
	}

	pack := Pack{Name: raw.Name, Levels: make([]Level, 0, len(raw.Levels))}
	for i, rl := range raw.Levels {
		name := rl.Name
		if name == "" {
			name = fmt.Sprintf("%s #%d", raw.Name, i+1)
		}

		lvl, err := decodeRawLevel(name, rl, images)
		if err != nil {
			return Pack{}, err
		}
		pack.Levels = append(pack.Levels, lvl)
	}

	logger.Log.WithFields(logrus.Fields{
		"pack":   pack.Name,
		"levels": len(pack.Levels),
	}).Debug("Level pack loaded")
	return pack, nil
}

func decodeRawLevel(name string, rl rawLevel, images fs.FS) (Level, error) {
	switch {
	case rl.Image != "" && len(rl.Rows) > 0:
		return Level{}, fmt.Errorf("level %q: set either rows or image, not both", name)
	case rl.Image != "":
		if images == nil {
			return Level{}, fmt.Errorf("level %q: no image source for %s", name, rl.Image)
		}
		f, err := images.Open(rl.Image)
		if err != nil {
			return Level{}, fmt.Errorf("level %q: %w", name, err)
		}
		defer f.Close()
		return DecodeImage(name, f)
	default:
		return ParseText(name, rl.Rows)
	}
}

// LoadPackFile reads a level pack from disk; image paths are relative to the pack file
func LoadPackFile(path string) (Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("read level pack: %w", err)
	}
	return LoadPack(data, os.DirFS(filepath.Dir(path)))
}

// DefaultPack returns the built-in levels
func DefaultPack() (Pack, error) {
	data, err := packFS.ReadFile(defaultPackPath)
	if err != nil {
		return Pack{}, err
	}
	images, err := fs.Sub(packFS, "packs")
	if err != nil {
		return Pack{}, err
	}
	return LoadPack(data, images)
}
