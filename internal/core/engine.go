package core

import (
	"fmt"

	"github.com/djskncxm/DuckRequest/internal/setting"
	"github.com/djskncxm/DuckRequest/pkg/blueprint"
	"github.com/djskncxm/DuckRequest/pkg/logger"
	"github.com/djskncxm/DuckRequest/pkg/middleware"
)

type Engine struct {
	scheduler  *Scheduler
	Config     *setting.SettingsManager
	Middleware *middleware.MiddlewareManager
	Logger     *logger.Logger
}

// InitEngine 创建引擎，配置了 Headers.UserAgent 时自动注册默认 User-Agent 中间件
func InitEngine(config *setting.SettingsManager, log *logger.Logger) (*Engine, error) {
	if config == nil {
		config = setting.NewSettingsManager()
	}
	if log == nil {
		var err error
		if log, err = logger.NewLogger(nil); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	mm := middleware.NewMiddlewareManager()
	if ua, ok := config.GetSetting("Headers.UserAgent"); ok && ua != "" {
		err := mm.Register(middleware.DefaultHeader{Key: "User-Agent", Value: ua}, middleware.MiddlewareConfig{
			Name:     "user-agent",
			Priority: middleware.PriorityLast,
			Group:    "headers",
		})
		if err != nil {
			return nil, err
		}
	}

	return &Engine{
		scheduler:  NewScheduler(),
		Config:     config,
		Middleware: mm,
		Logger:     log,
	}, nil
}

// Assemble 依次构造所有蓝图并入队，返回成功构造的数量
// 构造失败的错误先交给异常中间件，未处理的直接返回
func (e *Engine) Assemble(blueprints ...blueprint.Blueprint) (int, error) {
	built := 0
	for _, bp := range blueprints {
		style := bp.ResolvedStyle()
		log := e.Logger.WithFields(map[string]interface{}{"request": bp.Name, "style": string(style)})

		req, err := bp.Build()
		if err == nil {
			err = e.Middleware.ProcessRequest(req)
		}
		if err != nil {
			if err = e.Middleware.ProcessException(err); err != nil {
				return built, err
			}
			log.Warn("request skipped")
			e.count("skipped")
			continue
		}

		e.scheduler.EnqueueRequest(&Built{Name: bp.Name, Style: style, Request: req})
		built++
		e.count("built")
		e.count("built." + string(style))
		log.Debug("request built")
	}
	return built, nil
}

// Drain 按构造顺序取出全部请求
func (e *Engine) Drain() []*Built {
	out := make([]*Built, 0, e.scheduler.Size())
	for {
		b := e.scheduler.NextRequest()
		if b == nil {
			return out
		}
		out = append(out, b)
	}
}

func (e *Engine) Pending() int {
	return e.scheduler.Size()
}

func (e *Engine) count(key string) {
	if e.Logger.Stats != nil {
		e.Logger.Stats.Increment(key)
	}
}
