package httpc

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMethod = errors.New("unknown http method")

// Method 请求方法，只有 Get Put Post Delete Head 五种
type Method interface {
	Name() string
	isMethod()
}

// QueryItem URL 查询参数，Value 为 nil 表示只有名字没有值
type QueryItem struct {
	Name  string
	Value *string
}

type Get struct {
	Query []QueryItem
}

type Put struct {
	Body []byte
}

type Post struct {
	Body []byte
}

type Delete struct{}

type Head struct{}

func (Get) Name() string    { return "GET" }
func (Put) Name() string    { return "PUT" }
func (Post) Name() string   { return "POST" }
func (Delete) Name() string { return "DELETE" }
func (Head) Name() string   { return "HEAD" }

func (Get) isMethod()    {}
func (Put) isMethod()    {}
func (Post) isMethod()   {}
func (Delete) isMethod() {}
func (Head) isMethod()   {}

// ParseMethod 根据名字（大小写不敏感）生成对应的方法
// query 只对 GET 生效，body 只对 PUT/POST 生效
func ParseMethod(name string, query []QueryItem, body []byte) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GET":
		return Get{Query: query}, nil
	case "PUT":
		return Put{Body: body}, nil
	case "POST":
		return Post{Body: body}, nil
	case "DELETE":
		return Delete{}, nil
	case "HEAD":
		return Head{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

func cloneMethod(m Method) Method {
	switch v := m.(type) {
	case Get:
		if v.Query == nil {
			return v
		}
		query := make([]QueryItem, len(v.Query))
		for i, item := range v.Query {
			query[i] = QueryItem{Name: item.Name, Value: cloneString(item.Value)}
		}
		return Get{Query: query}
	case Put:
		return Put{Body: cloneBytes(v.Body)}
	case Post:
		return Post{Body: cloneBytes(v.Body)}
	}
	return m
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
