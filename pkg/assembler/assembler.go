package assembler

import (
	"fmt"
	"io"

	"github.com/djskncxm/DuckRequest/internal/core"
	"github.com/djskncxm/DuckRequest/internal/setting"
	"github.com/djskncxm/DuckRequest/pkg/blueprint"
	"github.com/djskncxm/DuckRequest/pkg/describe"
	"github.com/djskncxm/DuckRequest/pkg/logger"
)

type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

type Assembler struct {
	Engine  *core.Engine
	Config  *setting.SettingsManager
	Logger  *logger.Logger
	Setting *setting.Setting
}

// New 读取配置文件并初始化引擎
func New(configPath string) (*Assembler, error) {
	cfg, err := setting.Load(configPath)
	if err != nil {
		return nil, err
	}
	return FromSetting(cfg)
}

func FromSetting(cfg *setting.Setting) (*Assembler, error) {
	sm := setting.NewSettingsManager()
	sm.LoadFromSetting(cfg)

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	engine, err := core.InitEngine(sm, log)
	if err != nil {
		return nil, err
	}

	return &Assembler{
		Engine:  engine,
		Config:  sm,
		Logger:  log,
		Setting: cfg,
	}, nil
}

// Run 构造配置里的全部请求，并以 format 输出到 w
func (a *Assembler) Run(w io.Writer, format Format) error {
	return a.RunBlueprints(w, format, a.Setting.Requests...)
}

func (a *Assembler) RunBlueprints(w io.Writer, format Format, blueprints ...blueprint.Blueprint) error {
	a.Logger.Infof("assembling %d requests", len(blueprints))
	if _, err := a.Engine.Assemble(blueprints...); err != nil {
		return err
	}

	var entries []describe.Entry
	for _, b := range a.Engine.Drain() {
		entries = append(entries, describe.Entry{Name: b.Name, Request: b.Request})
	}

	switch format {
	case FormatYAML:
		return describe.YAML(w, entries...)
	case FormatTable, "":
		return describe.Table(w, entries...)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func (a *Assembler) Close() error {
	return a.Logger.Close()
}
