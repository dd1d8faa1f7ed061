// Package render implements program commands: applying styles to documents
// and compiling definitions ahead of time.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fcss/common"
	"fcss/defs"
	"fcss/dom"
	"fcss/engine"
	"fcss/state"
	"fcss/store"
	"fcss/target"
	"fcss/tokens"
)

// request is everything render needs, independent of command line.
type request struct {
	defsPath  string
	styles    string
	input     string
	output    string // empty means stdout
	kind      common.SurfaceKind
	selector  string
	storePath string
	selectors engine.Selectors
	classes   []string
	rtl       bool
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	req := request{
		defsPath:  cmd.Args().Get(0),
		output:    cmd.Args().Get(1),
		styles:    cmd.String("styles"),
		input:     cmd.String("input"),
		selector:  cmd.String("target"),
		storePath: cmd.String("store"),
		classes:   cmd.StringSlice("class"),
		rtl:       cmd.Bool("rtl"),
	}
	if len(req.defsPath) == 0 {
		return errors.New("no definitions file has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	if len(req.styles) == 0 {
		return errors.New("no styles name has been specified")
	}

	req.kind = env.Cfg.Output.Kind
	if k := cmd.String("kind"); len(k) > 0 {
		if req.kind, err = common.ParseSurfaceKind(k); err != nil {
			return fmt.Errorf("unknown document kind: %w", err)
		}
	} else if len(req.input) > 0 {
		req.kind = kindFromName(req.input, req.kind)
	}
	if req.kind == common.SurfaceKindMemory {
		return errors.New("memory surface could not be rendered into a document")
	}
	if len(req.selector) == 0 {
		req.selector = env.Cfg.Output.Selector
	}
	if len(req.selector) == 0 {
		req.selector = dom.DefaultSelector(req.kind)
	}
	if len(req.storePath) == 0 {
		req.storePath = env.Cfg.Output.StorePath
	}
	if req.selectors, err = parseSelectors(cmd.StringSlice("select")); err != nil {
		return err
	}
	if lang := cmd.String("lang"); len(lang) > 0 && tokens.IsRTL(lang) {
		log.Debug("Right-to-left language requested", zap.String("lang", lang))
		req.rtl = true
	}

	env.Overwrite = cmd.Bool("overwrite")
	if len(req.output) > 0 && !env.Overwrite {
		if _, err := os.Stat(req.output); err == nil {
			return fmt.Errorf("destination %q already exists, use --overwrite to replace it", req.output)
		}
	}

	log.Info("Rendering starting", zap.String("definitions", req.defsPath), zap.String("styles", req.styles), zap.Stringer("kind", req.kind))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var out io.Writer = os.Stdout
	if len(req.output) > 0 {
		f, err := os.Create(req.output)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", req.output, err)
		}
		defer func() {
			if e := f.Close(); e != nil && err == nil {
				err = e
			}
		}()
		out = f
	}
	return process(ctx, env, req, out, log)
}

// process applies requested styles to the document and writes result.
func process(ctx context.Context, env *state.LocalEnv, req request, out io.Writer, log *zap.Logger) error {
	set, err := defs.Load(req.defsPath, log)
	if err != nil {
		return err
	}
	e := env.Engine()
	st, err := set.Make(e, req.styles)
	if err != nil {
		return err
	}
	if len(req.storePath) > 0 {
		if st, err = precompiled(e, st, req.storePath, log); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, name, err := openDocument(req)
	if err != nil {
		return err
	}
	surface := target.NewSurface(name, doc)
	theme := engine.Theme{RTL: req.rtl, Tokens: set.Tokens, Target: surface}

	classes := st.Classes(theme, req.selectors, req.classes...)
	log.Debug("Classes computed", zap.String("classes", classes), zap.Any("selectors", req.selectors), zap.Bool("rtl", req.rtl))

	if root := e.RootRule(set.Tokens); !e.BakesTokens(surface) && !slices.Contains(doc.Rules(), root) {
		if err := doc.InsertRule(root, len(doc.Rules())); err != nil {
			return fmt.Errorf("unable to declare tokens: %w", err)
		}
	}

	n, err := dom.AddClasses(doc, map[string]string{req.selector: classes})
	if err != nil {
		return fmt.Errorf("unable to apply classes: %w", err)
	}
	if n == 0 {
		log.Warn("No elements matched target selector", zap.String("selector", req.selector))
	}

	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("styles/%s.txt", req.styles), []byte(st.Dump(set.Tokens)))
		env.Rpt.StoreData("rules.css", []byte(strings.Join(doc.Rules(), "\n")))
	}
	return doc.Render(out)
}

// precompiled replaces st with styles using class maps from the store when
// they are present there.
func precompiled(e *engine.Engine, st *engine.Styles, path string, log *zap.Logger) (*engine.Styles, error) {
	db, err := store.Open(path, log)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	list, err := db.Precompile(st)
	if err != nil {
		return nil, err
	}
	log.Debug("Using precompiled styles", zap.String("store", path), zap.String("styles", st.Name()))
	return e.MakeStyles(st.Name(), list...), nil
}

func openDocument(req request) (dom.Document, string, error) {
	if len(req.input) == 0 {
		doc, err := dom.New(req.kind)
		return doc, "new", err
	}
	data, err := os.ReadFile(req.input)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read input document: %w", err)
	}
	doc, err := dom.Open(req.kind, bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unable to load input document %q: %w", req.input, err)
	}
	return doc, filepath.Base(req.input), nil
}

func kindFromName(name string, def common.SurfaceKind) common.SurfaceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xhtml", ".xml":
		return common.SurfaceKindXhtml
	case ".html", ".htm":
		return common.SurfaceKindHtml
	}
	return def
}

// parseSelectors converts "key=value" pairs. Value is kept as string,
// matching is loose so "true" or "1" match boolean and numeric matchers.
func parseSelectors(pairs []string) (engine.Selectors, error) {
	sel := make(engine.Selectors, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || len(k) == 0 {
			return nil, fmt.Errorf("malformed selector %q, expected key=value", p)
		}
		sel[k] = strings.TrimSpace(v)
	}
	return sel, nil
}
