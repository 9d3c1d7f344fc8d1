package stream

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the application configuration read from YAML.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Qos      byte   `yaml:"qos"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	FrameRate  float64 `yaml:"frameRate"`
	Pixels     int     `yaml:"pixels"`
	Background string  `yaml:"background"`

	Layers []LayerConfig `yaml:"layers"`

	// Tweens are tween configs whose targets name layers.
	Tweens []yaml.MapSlice `yaml:"tweens"`
}

// LayerConfig describes one Strip or GradientTrail.
type LayerConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"` // "strip" (default) or "trail"
	Offset int    `yaml:"offset"`
	Length int    `yaml:"length"`

	Hue       float64 `yaml:"hue"`
	Chroma    float64 `yaml:"chroma"`
	Luminance float64 `yaml:"luminance"`

	TrailLength int           `yaml:"trailLength"`
	Gradient    GradientTable `yaml:"gradient"`
}

// LoadConfig reads and decodes a YAML config file, filling defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var c Config
	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

// ParseConfig decodes YAML from memory, filling defaults.
func ParseConfig(b []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.Pixels <= 0 {
		c.Pixels = DefaultPixels
	}
	if c.Background == "" {
		c.Background = "#000005"
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledtween"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	for i := range c.Layers {
		l := &c.Layers[i]
		if l.Kind == "" {
			l.Kind = "strip"
		}
		if l.Length <= 0 {
			l.Length = c.Pixels - l.Offset
		}
	}
}
