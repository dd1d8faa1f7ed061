package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fcss/config"
	"fcss/defs"
	"fcss/state"
	"fcss/store"
	"fcss/target"
	"fcss/tokens"
)

type compileRequest struct {
	defsPath string
	dbPath   string
	styles   []string // empty means all
	baked    bool
	cssDir   string
}

func Compile(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compile")

	req := compileRequest{
		defsPath: cmd.Args().Get(0),
		dbPath:   cmd.Args().Get(1),
		styles:   cmd.StringSlice("styles"),
		baked:    cmd.Bool("baked"),
		cssDir:   cmd.String("css-dir"),
	}
	if len(req.defsPath) == 0 {
		return errors.New("no definitions file has been specified")
	}
	if len(req.dbPath) == 0 {
		req.dbPath = env.Cfg.Output.StorePath
	}
	if len(req.dbPath) == 0 && len(req.cssDir) == 0 {
		return errors.New("nothing to do, neither database nor css directory has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	log.Info("Compilation starting", zap.String("definitions", req.defsPath), zap.String("store", req.dbPath), zap.Bool("baked", req.baked))
	defer func(start time.Time) {
		log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return compile(ctx, env, req, log)
}

// compile resolves every requested styles and saves results. Failure of one
// styles does not stop others.
func compile(ctx context.Context, env *state.LocalEnv, req compileRequest, log *zap.Logger) (err error) {
	set, err := defs.Load(req.defsPath, log)
	if err != nil {
		return err
	}
	names := req.styles
	if len(names) == 0 {
		names = set.Names()
	}

	var db *store.Store
	if len(req.dbPath) > 0 {
		if db, err = store.Open(req.dbPath, log); err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, db.Close())
		}()
	}
	if len(req.cssDir) > 0 {
		if err := os.MkdirAll(req.cssDir, 0755); err != nil {
			return fmt.Errorf("unable to create css directory: %w", err)
		}
	}

	var (
		table     *tokens.Table
		bakedFrom string
	)
	if req.baked {
		table = set.Tokens
		bakedFrom = table.Fingerprint()
	}

	e := env.Engine()
	for _, name := range names {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		st, er := set.Make(e, name)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		maps := st.Compile(table)
		if db != nil {
			if er := db.Save(name, maps, bakedFrom); er != nil {
				err = multierr.Append(err, er)
				continue
			}
		}
		if len(req.cssDir) > 0 {
			surface := target.NewMemorySurface(name)
			tgt := e.Targets().Get(surface)
			for _, cm := range maps {
				tgt.Inject(cm, false)
				tgt.Inject(cm, true)
			}
			if er := writeCSS(filepath.Join(req.cssDir, config.CleanFileName(name)+".css"), tgt, rootRule(e.RootRule(set.Tokens), req.baked)); er != nil {
				err = multierr.Append(err, er)
				continue
			}
		}
		if env.Rpt != nil {
			env.Rpt.StoreData(fmt.Sprintf("styles/%s.txt", name), []byte(st.Dump(table)))
		}
		log.Debug("Styles compiled", zap.String("name", name), zap.Int("definitions", len(maps)))
	}
	return err
}

func rootRule(rule string, baked bool) string {
	if baked {
		return ""
	}
	return rule
}

func writeCSS(path string, tgt *target.Target, root string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create css file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if len(root) > 0 {
		if _, err := fmt.Fprintln(f, root); err != nil {
			return err
		}
	}
	_, err = tgt.WriteTo(f)
	return err
}
