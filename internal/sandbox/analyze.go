package sandbox

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	provider "github.com/dirant/dirant/internal/provider/models"
)

const analysisSystemPrompt = `You are an expert assistant for file and directory analysis.
Analyze the provided file data and respond to user questions intelligently and in detail.

You can:
- Summarize file contents
- Identify patterns and relationships
- Provide detailed statistics
- Analyze code and structures
- Make data inferences
- Suggest improvements

Always respond in English, be precise and provide concrete examples when possible.`

const contentPreviewLimit = 500

// readableExtensions are the formats whose content is inlined into the
// analysis context regardless of size heuristics.
var readableExtensions = map[string]bool{
	".txt": true, ".py": true, ".js": true, ".go": true, ".json": true,
	".md": true, ".csv": true, ".xml": true, ".yaml": true, ".yml": true,
	".ini": true, ".cfg": true, ".log": true, ".sql": true, ".html": true,
	".css": true, ".env": true,
}

// fileReport is the per-file view assembled for analysis.
type fileReport struct {
	FileInfo
	Content  string
	Preview  string
	Readable bool
	Lines    int
	Words    int
}

// AnalyzerConfig tunes the model call made for analysis queries.
type AnalyzerConfig struct {
	Temperature float32
	MaxTokens   int32
}

// Analyzer answers free-form questions about the sandbox contents.
// With a provider it asks the model over a collected file context;
// without one, or when the model call fails, it falls back to
// deterministic metadata analysis. It never returns an error: every
// failure is rendered as a descriptive answer string.
type Analyzer struct {
	sandbox  *Sandbox
	provider provider.Provider
	cfg      AnalyzerConfig
	log      *zap.Logger
}

// NewAnalyzer builds an analyzer over a sandbox. The provider may be
// nil, in which case only the deterministic analysis is available.
func NewAnalyzer(sb *Sandbox, p provider.Provider, cfg AnalyzerConfig, log *zap.Logger) *Analyzer {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{sandbox: sb, provider: p, cfg: cfg, log: log}
}

// AnswerQuestion answers a question about the files in the base
// directory. A missing directory yields a descriptive string, never an
// error.
func (a *Analyzer) AnswerQuestion(ctx context.Context, query string) string {
	files, err := a.sandbox.List()
	if err != nil {
		if KindOf(err) == KindBaseDir {
			return fmt.Sprintf("Directory %s does not exist", a.sandbox.BaseDir())
		}
		return fmt.Sprintf("Error analyzing files: %v", err)
	}

	if len(files) == 0 {
		return "The directory is empty"
	}

	reports := a.collect(files)

	if a.provider != nil {
		answer, err := a.modelAnalysis(ctx, reports, query)
		if err == nil {
			return answer
		}
		a.log.Warn("model analysis failed, using basic analysis", zap.Error(err))
	}

	return a.basicAnalysis(reports, query)
}

// collect builds a per-file report including readable content.
func (a *Analyzer) collect(files []FileInfo) []fileReport {
	reports := make([]fileReport, 0, len(files))
	for _, f := range files {
		r := fileReport{FileInfo: f}
		if readableExtensions[f.Extension] || f.Size < 1024*1024 {
			if content, err := a.sandbox.Read(f.Name); err == nil {
				r.Content = content
				r.Readable = true
				r.Lines = len(strings.Split(content, "\n"))
				r.Words = len(strings.Fields(content))
				if len(content) > contentPreviewLimit {
					r.Preview = content[:contentPreviewLimit] + "..."
				} else {
					r.Preview = content
				}
			}
		}
		reports = append(reports, r)
	}
	return reports
}

// modelAnalysis asks the configured model over the collected context.
func (a *Analyzer) modelAnalysis(ctx context.Context, reports []fileReport, query string) (string, error) {
	temp := a.cfg.Temperature
	maxTokens := a.cfg.MaxTokens

	resp, err := a.provider.Generate(ctx, &provider.GenerateRequest{
		System: analysisSystemPrompt,
		Messages: []provider.Message{{
			Role: "user",
			Content: fmt.Sprintf("File data in directory:\n%s\n\nUser question: %s\n\nAnalyze the data and provide a complete and useful response.",
				a.renderContext(reports), query),
		}},
		Config: &provider.GenerateConfig{
			Temperature: &temp,
			MaxTokens:   &maxTokens,
		},
	})
	if err != nil {
		return "", err
	}
	if resp.Content.Type != provider.ResponseTypeText || resp.Content.Text == "" {
		return "", provider.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Content.Text), nil
}

// renderContext formats the file reports into the analysis prompt.
func (a *Analyzer) renderContext(reports []fileReport) string {
	var totalSize int64
	readable := 0
	types := map[string]int{}
	for _, r := range reports {
		totalSize += r.Size
		if r.Readable {
			readable++
		}
		ext := r.Extension
		if ext == "" {
			ext = "no extension"
		}
		types[ext]++
	}

	typeNames := make([]string, 0, len(types))
	for ext := range types {
		typeNames = append(typeNames, ext)
	}
	sort.Strings(typeNames)
	typeParts := make([]string, 0, len(typeNames))
	for _, ext := range typeNames {
		typeParts = append(typeParts, fmt.Sprintf("%d %s", types[ext], ext))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DIRECTORY SUMMARY:\n")
	fmt.Fprintf(&b, "- Path: %s\n", a.sandbox.BaseDir())
	fmt.Fprintf(&b, "- Total files: %d\n", len(reports))
	fmt.Fprintf(&b, "- Total size: %s\n", FormatSize(totalSize))
	fmt.Fprintf(&b, "- Readable files: %d\n", readable)
	fmt.Fprintf(&b, "- File types: %s\n", strings.Join(typeParts, ", "))

	b.WriteString("\nFILE DETAILS:\n")
	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s\n", r.Name)
		fmt.Fprintf(&b, "   - Size: %s\n", FormatSize(r.Size))
		fmt.Fprintf(&b, "   - Modified: %s\n", r.Modified.Format("2006-01-02 15:04:05"))
		ext := r.Extension
		if ext == "" {
			ext = "no extension"
		}
		fmt.Fprintf(&b, "   - Type: %s\n", ext)
		if r.Readable {
			fmt.Fprintf(&b, "   - Lines: %d\n", r.Lines)
			fmt.Fprintf(&b, "   - Words: %d\n", r.Words)
			fmt.Fprintf(&b, "   - Content preview:\n     %s\n", r.Preview)
		}
	}
	return b.String()
}

// basicAnalysis answers common question shapes from metadata alone.
// Ties are resolved in favor of the first file encountered.
func (a *Analyzer) basicAnalysis(reports []fileReport, query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "how many") || strings.Contains(q, "count"):
		return fmt.Sprintf("I found %d files in the directory.", len(reports))

	case strings.Contains(q, "largest") || strings.Contains(q, "biggest"):
		largest := reports[0]
		for _, r := range reports[1:] {
			if r.Size > largest.Size {
				largest = r
			}
		}
		return fmt.Sprintf("The largest file is '%s' (%s).", largest.Name, FormatSize(largest.Size))

	case strings.Contains(q, "smallest"):
		smallest := reports[0]
		for _, r := range reports[1:] {
			if r.Size < smallest.Size {
				smallest = r
			}
		}
		return fmt.Sprintf("The smallest file is '%s' (%s).", smallest.Name, FormatSize(smallest.Size))

	case strings.Contains(q, "types") || strings.Contains(q, "extensions"):
		types := map[string]int{}
		order := []string{}
		for _, r := range reports {
			ext := r.Extension
			if ext == "" {
				ext = "no extension"
			}
			if _, seen := types[ext]; !seen {
				order = append(order, ext)
			}
			types[ext]++
		}
		parts := make([]string, 0, len(order))
		for _, ext := range order {
			parts = append(parts, fmt.Sprintf("%d %s files", types[ext], ext))
		}
		return fmt.Sprintf("File types found: %s.", strings.Join(parts, ", "))

	case strings.Contains(q, "recent") || strings.Contains(q, "newest"):
		recent := reports[0]
		for _, r := range reports[1:] {
			if r.Modified.After(recent.Modified) {
				recent = r
			}
		}
		return fmt.Sprintf("The most recent file is '%s' (modified: %s).",
			recent.Name, recent.Modified.Format("2006-01-02 15:04:05"))

	case strings.Contains(q, "what does") || strings.Contains(q, "cosa fa"):
		for _, r := range reports {
			if strings.Contains(q, strings.ToLower(r.Name)) {
				if r.Readable {
					return fmt.Sprintf("File '%s' contains:\n%s", r.Name, r.Preview)
				}
				return fmt.Sprintf("File '%s' is a %s file (%s) but content cannot be analyzed without AI.",
					r.Name, r.Extension, FormatSize(r.Size))
			}
		}
		return "File not found or content cannot be analyzed without AI."

	default:
		var totalSize int64
		readable := 0
		types := map[string]bool{}
		order := []string{}
		for _, r := range reports {
			totalSize += r.Size
			if r.Readable {
				readable++
			}
			ext := r.Extension
			if ext == "" {
				ext = "no extension"
			}
			if !types[ext] {
				types[ext] = true
				order = append(order, ext)
			}
		}
		return fmt.Sprintf(`Directory analysis summary:
- Total files: %d
- Total size: %s
- Readable files: %d
- File types: %s

For detailed analysis of file contents and patterns, a model API key is required.`,
			len(reports), FormatSize(totalSize), readable, strings.Join(order, ", "))
	}
}
