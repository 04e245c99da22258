package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syssam/mapperkit"
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/sqlmap"
)

const userDescriptor = `tables:
  - name: user
    columns:
      - name: id
        type: bigint
        primaryKey: true
        identity: true
      - name: user_name
        type: varchar(64)
      - name: score
        type: int
`

// workspace writes a configuration file and a table descriptor into a
// temporary directory and returns the test context and the configuration.
func workspace(t *testing.T, extra string) (*Context, *Config) {
	t.Helper()
	dir := t.TempDir()
	tables := filepath.Join(dir, "user.yaml")
	require.NoError(t, os.WriteFile(tables, []byte(userDescriptor), 0o644))
	path := filepath.Join(dir, "mapperkit.yaml")
	conf := "target: " + filepath.Join(dir, "out") + "\npackage: model\ntables:\n  - " + tables + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))

	app := &Context{
		Config:   path,
		Out:      &bytes.Buffer{},
		Logger:   slog.New(slog.DiscardHandler),
		required: true,
	}
	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	return app, cfg
}

func TestLoadConfig(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		_, cfg := workspace(t, "properties:\n  allowMultiQueries: \"true\"\nfeatures: [insertBatch]\nstrictShowField: true\n")
		assert.Equal(t, "model", cfg.Package)
		assert.Equal(t, "mysql", cfg.Dialect)
		assert.Len(t, cfg.Tables, 1)
		assert.Equal(t, []string{"insertBatch"}, cfg.Features)
		assert.True(t, cfg.StrictShowField)
		assert.Equal(t, map[string]string{gen.PropAllowMultiQueries: "true"}, cfg.properties())
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("MAPPERKIT_PACKAGE", "mapper")
		t.Setenv("MAPPERKIT_WORKERS", "3")
		_, cfg := workspace(t, "")
		assert.Equal(t, "mapper", cfg.Package)
		assert.Equal(t, 3, cfg.Workers)
	})

	t.Run("MissingOptional", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfig), false)
		require.NoError(t, err)
		assert.Equal(t, ".", cfg.Target)
		assert.Equal(t, "mapper", cfg.Package)
	})

	t.Run("MissingRequired", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "other.yaml"), true)
		require.Error(t, err)
	})

	t.Run("Options", func(t *testing.T) {
		_, cfg := workspace(t, "header: \"source: user.yaml\"\n")
		c, err := gen.NewConfig(cfg.Options(slog.New(slog.DiscardHandler))...)
		require.NoError(t, err)
		assert.Equal(t, "model", c.Package)
		assert.Equal(t, "source: user.yaml", c.Header)
		assert.Equal(t, cfg.Target, c.Target)
	})
}

func TestGenerate(t *testing.T) {
	app, cfg := workspace(t, "")

	stats, err := generate(context.Background(), app, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Written)
	assert.FileExists(t, filepath.Join(cfg.Target, "UserMapper.xml"))
	assert.FileExists(t, filepath.Join(cfg.Target, "user_mapper.go"))
	assert.Contains(t, app.Out.(*bytes.Buffer).String(), "Generated 2 file(s)")

	t.Run("Unchanged", func(t *testing.T) {
		stats, err := generate(context.Background(), app, cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Written)
		assert.Equal(t, 2, stats.Skipped)
	})

	t.Run("NoTables", func(t *testing.T) {
		_, err := generate(context.Background(), app, &Config{Target: cfg.Target, Package: "model", Dialect: "mysql"})
		require.ErrorIs(t, err, ErrNoTables)
	})

	t.Run("Quiet", func(t *testing.T) {
		quiet := *app
		quiet.Quiet = true
		quiet.Out = &bytes.Buffer{}
		_, err := generate(context.Background(), &quiet, cfg)
		require.NoError(t, err)
		assert.Empty(t, quiet.Out.(*bytes.Buffer).String())
	})
}

func TestPreview(t *testing.T) {
	params := map[string]any{
		sqlmap.ShowFieldParam: []any{"user_name", "id"},
		"list": []any{
			map[string]any{"id": 1, "userName": "a"},
			map[string]any{"id": 2, "userName": "b"},
		},
	}

	t.Run("InsertBatchSelective", func(t *testing.T) {
		app, cfg := workspace(t, "")
		p, err := preview(context.Background(), app, cfg, "User", sqlmap.InsertBatchSelectiveID, params)
		require.NoError(t, err)
		assert.Equal(t, "UserMapper."+sqlmap.InsertBatchSelectiveID, p.Statement)
		assert.Equal(t, "insert into user (user_name,id) values (?,?),(?,?)", p.SQL)
		assert.Equal(t, []any{"a", 1, "b", 2}, p.Args)
	})

	t.Run("Strict", func(t *testing.T) {
		app, cfg := workspace(t, "strictShowField: true\n")
		_, err := preview(context.Background(), app, cfg, "user", sqlmap.InsertBatchSelectiveID, map[string]any{
			sqlmap.ShowFieldParam: []any{"nope"},
		})
		require.Error(t, err)
		assert.True(t, mapperkit.IsNotFound(err))
	})

	t.Run("UnknownTable", func(t *testing.T) {
		app, cfg := workspace(t, "")
		_, err := preview(context.Background(), app, cfg, "order", sqlmap.InsertBatchSelectiveID, params)
		require.Error(t, err)
		assert.True(t, mapperkit.IsNotFound(err))
	})

	t.Run("UnknownStatement", func(t *testing.T) {
		app, cfg := workspace(t, "")
		_, err := preview(context.Background(), app, cfg, "user", "nope", params)
		require.Error(t, err)
		assert.True(t, mapperkit.IsNotFound(err))
	})
}

func TestWritePreview(t *testing.T) {
	p := &Preview{Statement: "UserMapper.deleteByPrimaryKey", SQL: "delete from user where id = ?", Args: []any{7}}

	var text bytes.Buffer
	require.NoError(t, writePreview(&text, p, "text"))
	assert.Equal(t, "-- UserMapper.deleteByPrimaryKey\ndelete from user where id = ?\n-- args: [7]\n", text.String())

	var out bytes.Buffer
	require.NoError(t, writePreview(&out, p, "yaml"))
	var back Preview
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, p.SQL, back.SQL)
	assert.Equal(t, []any{7}, back.Args)
}

func TestWatched(t *testing.T) {
	files := watched("mapperkit.yaml", []string{"tables/user.yaml", "./tables/../tables/user.yaml"})
	assert.Len(t, files, 2)
	for f := range files {
		assert.True(t, filepath.IsAbs(f))
		assert.False(t, strings.Contains(f, ".."))
	}
}

func TestWatch(t *testing.T) {
	app, cfg := workspace(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	w := &WatchCmd{Debounce: 10 * time.Millisecond}
	require.NoError(t, w.watch(ctx, app))
	assert.FileExists(t, filepath.Join(cfg.Target, "UserMapper.xml"))
	assert.Contains(t, app.Out.(*bytes.Buffer).String(), "Watching 2 file(s)")
}
