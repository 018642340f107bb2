package store

import (
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/routines/pkg/routine"
)

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	// DefaultKey is the storage key the whole collection lives under.
	DefaultKey = "routines"
)

// Config selects where and how the collection is stored.
type Config interface {
	BasePath() string
	Backend() string
	Key() string
}

// Settings is the resolved configuration file. It satisfies Config and also
// carries the presentation options the hosts need.
type Settings struct {
	Path        string `json:"path"`
	StoreKind   string `json:"backend"`
	StoreKey    string `json:"key"`
	Student     bool   `json:"student"`
	TimeLayout  string `json:"time_layout"`
	ChartFile   string `json:"chart_file"`
	ChartInTerm bool   `json:"chart"`
}

func (s *Settings) BasePath() string { return s.Path }

func (s *Settings) Backend() string {
	if s.StoreKind == "" {
		return BackendDiskv
	}
	return s.StoreKind
}

func (s *Settings) Key() string {
	if s.StoreKey == "" {
		return DefaultKey
	}
	return s.StoreKey
}

// LoadConfig reads .routines.yaml from $ROUTINES_CONFIG_PATH or the working
// directory. Every key can be overridden with a ROUTINES_ env var.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.routines.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("student", true)
	v.SetDefault("time_layout", routine.DefaultDisplayLayout)
	v.SetDefault("chart.enabled", true)
	v.SetDefault("chart.file", "")
	v.SetConfigName(".routines") // .yaml is implicit
	v.SetEnvPrefix("ROUTINES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("ROUTINES_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Path:        path,
		StoreKind:   strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		StoreKey:    strings.TrimSpace(v.GetString("key")),
		Student:     v.GetBool("student"),
		TimeLayout:  v.GetString("time_layout"),
		ChartFile:   v.GetString("chart.file"),
		ChartInTerm: v.GetBool("chart.enabled"),
	}, nil
}
