package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen          string    `yaml:"listen"`
	Timezone        string    `yaml:"timezone"`
	RefreshInterval Duration  `yaml:"refresh_interval"`
	DataURL         string    `yaml:"data_url"`
	BoundaryPath    string    `yaml:"boundary_path"`
	County          string    `yaml:"county"`
	QPF             QPFConfig `yaml:"qpf"`
}

// Duration parses YAML scalars like "30m" that yaml.v3 would otherwise
// reject for time.Duration fields.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type QPFConfig struct {
	URLs []string  `yaml:"urls"`
	ROI  ROIConfig `yaml:"roi"`
}

// ROIConfig is the crop rectangle inside the upstream QPF image, in source
// pixel coordinates.
type ROIConfig struct {
	XMin int `yaml:"x_min"`
	XMax int `yaml:"x_max"`
	YMin int `yaml:"y_min"`
	YMax int `yaml:"y_max"`
}

// Default returns the built-in configuration for the Taoyuan deployment.
func Default() Config {
	return Config{
		Listen:          ":8080",
		Timezone:        "Asia/Taipei",
		RefreshInterval: Duration(1 * time.Hour),
		DataURL:         "https://cwaopendata.s3.ap-northeast-1.amazonaws.com/Forecast/F-D0047-005.json",
		BoundaryPath:    "data/twtown2010.3.json",
		County:          "桃園",
		QPF: QPFConfig{
			URLs: []string{
				"https://cwa.ppp503.workers.dev/Data/fcst_img/QPF_ChFcstPrecip_6_06.png",
				"https://cwa.ppp503.workers.dev/Data/fcst_img/QPF_ChFcstPrecip_6_12.png",
				"https://cwa.ppp503.workers.dev/Data/fcst_img/QPF_ChFcstPrecip_6_18.png",
				"https://cwa.ppp503.workers.dev/Data/fcst_img/QPF_ChFcstPrecip_6_24.png",
			},
			ROI: ROIConfig{XMin: 735, XMax: 911, YMin: 266, YMax: 458},
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = Duration(1 * time.Hour)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.DataURL == "" {
		return Config{}, fmt.Errorf("data_url is required")
	}
	if roi := cfg.QPF.ROI; roi.XMax <= roi.XMin || roi.YMax <= roi.YMin {
		return Config{}, fmt.Errorf("qpf.roi: empty crop rectangle")
	}
	return cfg, nil
}
