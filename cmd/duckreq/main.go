package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/djskncxm/DuckRequest/pkg/assembler"
	"github.com/djskncxm/DuckRequest/pkg/describe"
	"github.com/djskncxm/DuckRequest/pkg/httpc"
)

const demoURL = "https://aweseome.builder.example.io"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("duckreq: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "duckreq",
		Usage: "build http request descriptions from a yaml catalog",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "build every request in the config file and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "config/config.yaml",
						Usage:   "path to the yaml config",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   string(assembler.FormatTable),
						Usage:   "output format: table|yaml",
					},
					&cli.BoolFlag{
						Name:  "stats",
						Usage: "print build statistics after the requests",
					},
				},
				Action: build,
			},
			{
				Name:   "demo",
				Usage:  "build the same request with all three construction styles",
				Action: func(c *cli.Context) error { return demo(c.App.Writer) },
			},
		},
	}
}

func build(c *cli.Context) error {
	a, err := assembler.New(c.String("config"))
	if err != nil {
		return err
	}
	defer a.Close()

	out := c.App.Writer
	if err := a.Run(out, assembler.Format(c.String("output"))); err != nil {
		return err
	}
	if c.Bool("stats") {
		return a.Logger.PrintStats(out)
	}
	return nil
}

func demo(w io.Writer) error {
	headers := map[string]string{"Content-Type": "application/json"}

	builder := httpc.NewMethodBuilder(httpc.Head{}).
		WithURL(httpc.ParseURL(demoURL)).
		WithHeaders(headers).
		WithPath("/all").
		Build()

	closure := httpc.NewWithConfig(func(r *httpc.Request) {
		r.Method = httpc.Head{}
		r.URL = httpc.ParseURL(demoURL)
		r.Path = httpc.String("/all")
		r.Headers = map[string]string{"Content-Type": "application/json"}
	})

	keyPath := httpc.New().
		Set(httpc.URLField.To(httpc.ParseURL(demoURL))).
		Set(httpc.PathField.To("/all")).
		Set(httpc.HeadersField.To(map[string]string{"Content-Type": "application/json"}))

	heading := color.New(color.FgCyan, color.Bold)
	for _, e := range []describe.Entry{
		{Name: "builder", Request: builder},
		{Name: "closure", Request: closure},
		{Name: "keypath", Request: keyPath},
	} {
		heading.Fprintf(w, "# %s\n", e.Name)
		if err := describe.Table(w, e); err != nil {
			return err
		}
	}
	return nil
}
