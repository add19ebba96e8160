package middleware

import (
	"errors"
	"fmt"
	"sort"

	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

// 中间件接口定义
type RequestProcessor interface {
	ProcessRequest(*httpc.Request) error
}

type ExceptionProcessor interface {
	ProcessException(error) (handled bool, newErr error)
}

type MiddlewarePriority int

const (
	PriorityFirst  MiddlewarePriority = 100
	PriorityHigh   MiddlewarePriority = 50
	PriorityNormal MiddlewarePriority = 0
	PriorityLow    MiddlewarePriority = -50
	PriorityLast   MiddlewarePriority = -100
)

type MiddlewareConfig struct {
	Name     string
	Priority MiddlewarePriority
	Disabled bool
	Group    string
}

type DecoratedMiddleware struct {
	ID        string
	Processor interface{}
	Config    MiddlewareConfig
}

type MiddlewareManager struct {
	requestChain   []DecoratedMiddleware
	exceptionChain []DecoratedMiddleware

	middlewareMap  map[string]DecoratedMiddleware
	disabledGroups map[string]bool
}

func NewMiddlewareManager() *MiddlewareManager {
	return &MiddlewareManager{
		middlewareMap:  make(map[string]DecoratedMiddleware),
		disabledGroups: make(map[string]bool),
	}
}

// Register 自动检测实现了哪些接口，同名注册会返回错误
func (mm *MiddlewareManager) Register(middleware interface{}, config ...MiddlewareConfig) error {
	cfg := MiddlewareConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("%T", middleware)
	}

	id := generateID(cfg.Name)
	if _, exists := mm.middlewareMap[id]; exists {
		return fmt.Errorf("middleware %s already registered", cfg.Name)
	}

	dm := DecoratedMiddleware{
		ID:        id,
		Processor: middleware,
		Config:    cfg,
	}

	registered := false
	if _, ok := middleware.(RequestProcessor); ok {
		mm.requestChain = append(mm.requestChain, dm)
		sortChain(mm.requestChain)
		registered = true
	}

	if _, ok := middleware.(ExceptionProcessor); ok {
		mm.exceptionChain = append(mm.exceptionChain, dm)
		sortChain(mm.exceptionChain)
		registered = true
	}

	if !registered {
		return fmt.Errorf("middleware %s implements no processor interface", cfg.Name)
	}

	mm.middlewareMap[id] = dm
	return nil
}

// ProcessRequest 按优先级从高到低依次处理，遇到错误立即返回
func (mm *MiddlewareManager) ProcessRequest(req *httpc.Request) error {
	for _, dm := range mm.getEnabledMiddlewares(mm.requestChain) {
		if rp, ok := dm.Processor.(RequestProcessor); ok {
			if err := rp.ProcessRequest(req); err != nil {
				return fmt.Errorf("middleware %s failed: %w", dm.Config.Name, err)
			}
		}
	}
	return nil
}

// ProcessException 返回 nil 表示错误已被处理
func (mm *MiddlewareManager) ProcessException(err error) error {
	for _, dm := range mm.getEnabledMiddlewares(mm.exceptionChain) {
		if ep, ok := dm.Processor.(ExceptionProcessor); ok {
			if handled, newErr := ep.ProcessException(err); handled {
				return newErr
			}
		}
	}
	return err
}

func (mm *MiddlewareManager) getEnabledMiddlewares(chain []DecoratedMiddleware) []DecoratedMiddleware {
	result := make([]DecoratedMiddleware, 0, len(chain))
	for _, dm := range chain {
		if !dm.Config.Disabled && !mm.disabledGroups[dm.Config.Group] {
			result = append(result, dm)
		}
	}
	return result
}

func (mm *MiddlewareManager) EnableGroup(group string) {
	delete(mm.disabledGroups, group)
}

func (mm *MiddlewareManager) DisableGroup(group string) {
	mm.disabledGroups[group] = true
}

// 优先级高的排在前面，同优先级保持注册顺序
func sortChain(chain []DecoratedMiddleware) {
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].Config.Priority > chain[j].Config.Priority
	})
}

func generateID(name string) string {
	return fmt.Sprintf("mw-%s", name)
}

// DefaultHeader 请求里没有该头时补上
type DefaultHeader struct {
	Key   string
	Value string
}

func (d DefaultHeader) ProcessRequest(req *httpc.Request) error {
	if d.Key == "" {
		return nil
	}
	if _, ok := req.Headers[d.Key]; ok {
		return nil
	}
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	req.Headers[d.Key] = d.Value
	return nil
}

// IgnoreErrors 吞掉匹配的错误
type IgnoreErrors struct {
	Targets []error
}

func (i IgnoreErrors) ProcessException(err error) (bool, error) {
	for _, target := range i.Targets {
		if errors.Is(err, target) {
			return true, nil
		}
	}
	return false, err
}
