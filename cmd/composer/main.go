package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/arch-to-diagram/composer/internal/artifact"
	"github.com/arch-to-diagram/composer/internal/config"
	"github.com/arch-to-diagram/composer/internal/generate"
	"github.com/arch-to-diagram/composer/internal/infer"
	"github.com/arch-to-diagram/composer/internal/logger"
	"github.com/arch-to-diagram/composer/internal/render"
	"github.com/arch-to-diagram/composer/internal/request"
)

func main() {
	input := flag.String("input", "", "Path to request JSON file (or - for stdin)")
	output := flag.String("o", "", "Staging directory override")
	format := flag.String("format", "", "Diagram format: png or svg")
	cfgPath := flag.String("config", "composer.yaml", "Path to config file")
	noExport := flag.Bool("no-export", false, "Do not generate the Terraform skeleton")
	jsonOut := flag.Bool("json", false, "Print the full result as JSON")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: composer -input <file|-> [-o dir] [-format png|svg] [-no-export] [-json]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	_ = godotenv.Load()
	log := logger.Default

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		cfg.Render.Format = *format
	}
	if *output != "" {
		cfg.Staging.Dirs = append([]string{*output}, cfg.Staging.Dirs...)
	}

	var data []byte
	if *input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var req request.ArchitectureRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintf(os.Stderr, "parse JSON: %v\n", err)
		os.Exit(1)
	}

	writer, err := artifact.NewWriter(cfg.Staging.Dirs, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "staging: %v\n", err)
		os.Exit(1)
	}

	engine := &infer.Engine{Timeout: cfg.Completion.Timeout, Log: log}
	if cfg.Completion.APIKey != "" {
		client, cerr := infer.NewOpenAIClient(cfg.Completion.APIKey, cfg.Completion.Model, log)
		if cerr == nil {
			engine.Client = client
		}
	}

	g := &generate.Generator{
		Log:       log,
		Inference: engine,
		Graphviz: &render.Graphviz{
			BinPath: cfg.Render.GraphvizPath,
			Timeout: cfg.Render.Timeout,
		},
		Writer:     writer,
		Format:     cfg.Render.Format,
		EmitExport: !*noExport,
	}

	res := g.Generate(context.Background(), &req)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		if !res.Success {
			os.Exit(1)
		}
		return
	}

	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "ERROR [%s] %s\n", e.Field, e.Message)
		if e.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  suggestion: %s\n", e.Suggestion)
		}
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "WARN [%s] %s\n", w.Type, w.Message)
	}
	if !res.Success {
		os.Exit(1)
	}
	fmt.Println("template:", res.TemplateName)
	fmt.Println("diagram: ", res.DiagramPath)
	if res.ExportPath != "" {
		fmt.Println("export:  ", res.ExportPath)
	}
}
