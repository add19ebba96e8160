// Package describe 把请求描述输出成表格（给人看）或 YAML（给工具用），只读不发送
package describe

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"

	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

type Entry struct {
	Name    string
	Request *httpc.Request
}

// Snapshot 请求的扁平视图，未设置的字段为空，YAML 输出时省略
type Snapshot struct {
	Name    string            `yaml:"name,omitempty"`
	Method  string            `yaml:"method,omitempty"`
	Query   []string          `yaml:"query,omitempty"`
	Body    string            `yaml:"body,omitempty"`
	URL     *string           `yaml:"url,omitempty"`
	Host    string            `yaml:"host,omitempty"`
	Path    *string           `yaml:"path,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

func Snap(e Entry) Snapshot {
	s := Snapshot{Name: e.Name}
	r := e.Request
	if r == nil {
		return s
	}

	if r.Method != nil {
		s.Method = r.Method.Name()
		switch m := r.Method.(type) {
		case httpc.Get:
			for _, q := range m.Query {
				if q.Value == nil {
					s.Query = append(s.Query, q.Name)
				} else {
					s.Query = append(s.Query, q.Name+"="+*q.Value)
				}
			}
		case httpc.Put:
			s.Body = string(m.Body)
		case httpc.Post:
			s.Body = string(m.Body)
		}
	}

	if r.URL != nil {
		s.URL = httpc.String(r.URL.String())
		s.Host = displayHost(r.URL.Hostname())
	}
	if r.Path != nil {
		p := *r.Path
		s.Path = &p
	}
	if r.Headers != nil {
		s.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			s.Headers[k] = v
		}
	}
	return s
}

// displayHost 返回 IDNA 主机名的 Unicode 形式，转换失败时原样返回
func displayHost(host string) string {
	if host == "" {
		return ""
	}
	u, err := idna.ToUnicode(host)
	if err != nil {
		return host
	}
	return u
}

// Table 每个请求输出一组 Field/Value 行，请求头按键排序
func Table(w io.Writer, entries ...Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Request", "Field", "Value"})

	for _, e := range entries {
		s := Snap(e)
		rows := [][2]string{}
		add := func(field, value string) { rows = append(rows, [2]string{field, value}) }

		if s.Method != "" {
			add("method", s.Method)
		}
		for _, q := range s.Query {
			add("query", q)
		}
		if s.Body != "" {
			add("body", s.Body)
		}
		if s.URL != nil {
			add("url", *s.URL)
			if s.Host != "" && s.Host != e.Request.URL.Hostname() {
				add("host", s.Host)
			}
		}
		if s.Path != nil {
			add("path", *s.Path)
		}

		headers := treemap.NewWithStringComparator()
		for k, v := range s.Headers {
			headers.Put(k, v)
		}
		headers.Each(func(key, value interface{}) {
			add("header", fmt.Sprintf("%s: %s", key, value))
		})

		if len(rows) == 0 {
			add("-", "(empty)")
		}
		for _, row := range rows {
			if err := table.Append([]string{s.Name, row[0], row[1]}); err != nil {
				return err
			}
		}
	}

	return table.Render()
}

// YAML 每个请求输出一个 YAML 文档
func YAML(w io.Writer, entries ...Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, e := range entries {
		if err := enc.Encode(Snap(e)); err != nil {
			return err
		}
	}
	return enc.Close()
}
