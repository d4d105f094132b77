package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/jkassemi/ttb-labeling/config"
	"github.com/jkassemi/ttb-labeling/extract"
	"github.com/jkassemi/ttb-labeling/fixtures"
	"github.com/jkassemi/ttb-labeling/observability"
	"github.com/jkassemi/ttb-labeling/ocr/tesseract"
	"github.com/jkassemi/ttb-labeling/rules"
	"github.com/jkassemi/ttb-labeling/vlm"
	"github.com/jkassemi/ttb-labeling/vlm/openai"
)

type options struct {
	imagePaths []string
	fixtureDir string
	configPath string
	useOpenAI  bool
	model      string
	baseURL    string
	languages  string
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "labelcheck: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "labelcheck: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/labelcheck [flags] <image>...\n")
		flag.PrintDefaults()
	}
	fixture := flag.String("fixture", "", "Load images and application fields from a sample directory instead of image arguments")
	configPath := flag.String("config", "", "Path to a YAML config file")
	useOpenAI := flag.Bool("openai", false, "Extract fields with the OpenAI vision model (needs OPENAI_API_KEY)")
	model := flag.String("model", "", "Override the vision model name")
	baseURL := flag.String("base-url", "", "Override the OpenAI-compatible API base URL")
	languages := flag.String("lang", "eng", "Tesseract language codes, comma separated")
	verbose := flag.Bool("v", false, "Log pipeline progress to stderr")
	flag.Parse()

	if flag.NArg() == 0 && *fixture == "" {
		flag.Usage()
		return options{}, fmt.Errorf("missing image paths")
	}
	opts.imagePaths = flag.Args()
	opts.fixtureDir = *fixture
	opts.configPath = *configPath
	opts.useOpenAI = *useOpenAI
	opts.model = *model
	opts.baseURL = *baseURL
	opts.languages = *languages
	opts.verbose = *verbose
	return opts, nil
}

type report struct {
	LabelInfo any             `json:"label_info"`
	Findings  []rules.Finding `json:"findings"`
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	var log observability.Logger = observability.NopLogger{}
	if opts.verbose {
		log = stderrLogger{}
	}

	images, application, err := loadInputs(opts)
	if err != nil {
		return err
	}

	var model vlm.Extractor = vlm.Nop{}
	if opts.useOpenAI {
		var modelOpts []openai.Option
		if opts.model != "" {
			modelOpts = append(modelOpts, openai.WithModel(opts.model))
		}
		if opts.baseURL != "" {
			modelOpts = append(modelOpts, openai.WithBaseURL(opts.baseURL))
		}
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			modelOpts = append(modelOpts, openai.WithAPIKey(key))
		}
		model = openai.New(modelOpts...)
	}

	pipeline := &extract.Pipeline{
		Engine: tesseract.New(splitLanguages(opts.languages)...),
		Model:  model,
		Config: cfg,
		Log:    log,
	}
	result, err := pipeline.Run(context.Background(), images)
	if err != nil {
		return err
	}

	checklist := rules.Evaluate(result.LabelInfo, rules.Options{
		Application: application,
		Config:      cfg,
		Spans:       result.Spans,
		Images:      images,
	})

	out := report{LabelInfo: result.LabelInfo, Findings: checklist.Findings}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Printf("%s\n", data)
	return nil
}

func loadInputs(opts options) ([]image.Image, *rules.ApplicationFields, error) {
	if opts.fixtureDir != "" {
		sample, err := fixtures.Load(opts.fixtureDir)
		if err != nil {
			return nil, nil, err
		}
		if len(sample.Images) == 0 {
			return nil, nil, fmt.Errorf("fixture %s has no readable images", opts.fixtureDir)
		}
		return sample.Images, sample.ApplicationFields(), nil
	}
	images := make([]image.Image, 0, len(opts.imagePaths))
	for _, path := range opts.imagePaths {
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open image: %w", err)
		}
		img, _, err := image.Decode(file)
		file.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", path, err)
		}
		images = append(images, img)
	}
	return images, nil, nil
}

func splitLanguages(list string) []string {
	var langs []string
	for _, lang := range strings.Split(list, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

type stderrLogger struct {
	fields []observability.Field
}

func (l stderrLogger) Debug(msg string, fields ...observability.Field) { l.emit("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields ...observability.Field)  { l.emit("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields ...observability.Field)  { l.emit("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields ...observability.Field) { l.emit("ERROR", msg, fields) }

func (l stderrLogger) With(fields ...observability.Field) observability.Logger {
	return stderrLogger{fields: append(append([]observability.Field{}, l.fields...), fields...)}
}

func (l stderrLogger) emit(level, msg string, fields []observability.Field) {
	fmt.Fprintf(os.Stderr, "%s %s", level, msg)
	for _, f := range append(l.fields, fields...) {
		fmt.Fprintf(os.Stderr, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(os.Stderr)
}
