// Test Type: Unit Test
// Description: Tests for the organizer per-file pipeline

package organizer_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/filesystem"
	"github.com/arthur-debert/dirsort/pkg/organizer"
	"github.com/arthur-debert/dirsort/pkg/rules"
	"github.com/arthur-debert/dirsort/pkg/testutil"
	"github.com/arthur-debert/dirsort/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRules(t *testing.T, tokens ...string) rules.Table {
	t.Helper()
	table, err := rules.ParseTokens(tokens)
	require.NoError(t, err)
	return table
}

func TestOrganize_MovesByExtensionAndDate(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	env.AddFile("a.TXT", "alpha", testutil.Date(2024, time.March, 1))
	env.AddFile("b.bin", "bravo", testutil.Date(2024, time.March, 2))

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents", "*=misc"),
		organizer.WithFS(env.FS))

	assert.Equal(t, 2, report.Count(organizer.StatusMoved))
	assert.True(t, env.Exists("documents", "2024-03-01", "a.TXT"))
	assert.True(t, env.Exists("misc", "2024-03-02", "b.bin"))
	assert.False(t, env.Exists("a.TXT"))
	assert.False(t, env.Exists("b.bin"))
	assert.Equal(t, "alpha", env.ReadFile("documents", "2024-03-01", "a.TXT"))

	res, ok := report.Lookup("a.TXT")
	require.True(t, ok)
	assert.Equal(t, "documents", res.Subdir)
	assert.Equal(t, env.Path("a.TXT"), res.Source)
	assert.Equal(t, env.Path("documents", "2024-03-01", "a.TXT"), res.Destination)
}

func TestOrganize_DateComesFromModificationTime(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	mtime := testutil.Date(2023, time.December, 31)
	env.AddFile("report.pdf", "pdf", mtime)

	organizer.Organize(env.Dir, mustRules(t, ".pdf=papers"), organizer.WithFS(env.FS))

	dest := []string{"papers", organizer.DateFolder(mtime), "report.pdf"}
	require.True(t, env.Exists(dest...))
	assert.Equal(t, "2023-12-31", organizer.DateFolder(mtime))
	assert.True(t, env.ModTime(dest...).Equal(mtime))
}

func TestOrganize_UnmatchedFilesStayInPlace(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	env.AddFile("notes.md", "notes", testutil.Date(2024, time.March, 1))

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents"), organizer.WithFS(env.FS))

	assert.Equal(t, 1, report.Count(organizer.StatusUnmatched))
	assert.True(t, env.Exists("notes.md"))
	assert.False(t, env.Exists("documents"), "no directory should be created for unmatched files")
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "No rule found for file 'notes.md'. Skipping.")
}

func TestOrganize_EmptyRulesMoveNothing(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	names := []string{"a.txt", "b.jpg", "README"}
	for _, name := range names {
		env.AddFile(name, name, testutil.Date(2024, time.March, 1))
	}

	report := organizer.Organize(env.Dir, rules.Table{}, organizer.WithFS(env.FS))

	assert.Equal(t, 0, report.Count(organizer.StatusMoved))
	assert.Equal(t, len(names), report.Count(organizer.StatusUnmatched))
	for _, name := range names {
		assert.True(t, env.Exists(name))
		assert.Contains(t, logs.String(), fmt.Sprintf("No rule found for file '%s'", name))
	}
	assert.Equal(t, len(names), strings.Count(logs.String(), `"level":"warn"`))
}

func TestOrganize_WildcardAndEmptyExtension(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	day := testutil.Date(2024, time.March, 1)

	env.AddFile("Makefile", "all:", day)
	env.AddFile("photo.png", "png", day)

	t.Run("wildcard_catches_files_without_extension", func(t *testing.T) {
		report := organizer.Organize(env.Dir, mustRules(t, "*=misc"), organizer.WithFS(env.FS))

		assert.Equal(t, 2, report.Count(organizer.StatusMoved))
		assert.True(t, env.Exists("misc", "2024-03-01", "Makefile"))
		assert.True(t, env.Exists("misc", "2024-03-01", "photo.png"))
	})

	t.Run("empty_key_takes_precedence", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.AddFile("Makefile", "all:", day)
		env.AddFile("photo.png", "png", day)

		organizer.Organize(env.Dir, mustRules(t, "=noext", "*=misc"), organizer.WithFS(env.FS))

		assert.True(t, env.Exists("noext", "2024-03-01", "Makefile"))
		assert.True(t, env.Exists("misc", "2024-03-01", "photo.png"))
	})
}

func TestOrganize_EmptySubdirRuleLeavesFilesInPlace(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	day := testutil.Date(2024, time.March, 1)

	env.AddFile("a.txt", "alpha", day)
	env.AddFile("b.jpg", "bravo", day)

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=", ".jpg=images", "*=misc"),
		organizer.WithFS(env.FS))

	res, ok := report.Lookup("a.txt")
	require.True(t, ok)
	assert.Equal(t, organizer.StatusUnmatched, res.Status)
	assert.Equal(t, "alpha", env.ReadFile("a.txt"))
	assert.False(t, env.Exists("misc"))
	assert.True(t, env.Exists("images", "2024-03-01", "b.jpg"))
	assert.Contains(t, logs.String(), "No rule found for file 'a.txt'. Skipping.")
}

func TestOrganize_IsNotRecursive(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	env.AddFile("nested/deep.txt", "deep", testutil.Date(2024, time.March, 1))
	env.AddFile("top.txt", "top", testutil.Date(2024, time.March, 1))

	report := organizer.Organize(env.Dir, mustRules(t, "*=misc"), organizer.WithFS(env.FS))

	assert.Len(t, report.Results, 1)
	assert.True(t, env.Exists("nested", "deep.txt"))
	assert.True(t, env.Exists("nested"))
	assert.True(t, env.Exists("misc", "2024-03-01", "top.txt"))
	assert.False(t, env.Exists("misc", "2024-03-01", "nested"))
}

func TestOrganize_SecondRunIsNoop(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	table := mustRules(t, ".txt=documents", "*=misc")

	env.AddFile("a.txt", "a", testutil.Date(2024, time.March, 1))
	env.AddFile("b.bin", "b", testutil.Date(2024, time.March, 2))

	first := organizer.Organize(env.Dir, table, organizer.WithFS(env.FS))
	require.Equal(t, 2, first.Count(organizer.StatusMoved))

	second := organizer.Organize(env.Dir, table, organizer.WithFS(env.FS))
	assert.Empty(t, second.Results)
	assert.True(t, env.Exists("documents", "2024-03-01", "a.txt"))
	assert.True(t, env.Exists("misc", "2024-03-02", "b.bin"))
}

func TestOrganize_SharedDateDirectory(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	table := mustRules(t, ".txt=documents")
	day := testutil.Date(2024, time.March, 1)

	env.AddFile("one.txt", "1", day)
	env.AddFile("two.txt", "2", day)

	report := organizer.Organize(env.Dir, table, organizer.WithFS(env.FS))
	require.Equal(t, 2, report.Count(organizer.StatusMoved))

	// A later file landing in the existing date directory
	env.AddFile("three.txt", "3", day)
	report = organizer.Organize(env.Dir, table, organizer.WithFS(env.FS))

	assert.Equal(t, 1, report.Count(organizer.StatusMoved))
	assert.Equal(t, 0, report.Count(organizer.StatusFailed))
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		assert.True(t, env.Exists("documents", "2024-03-01", name), name)
	}
}

func TestOrganize_FailureIsIsolatedPerFile(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	day := testutil.Date(2024, time.March, 1)

	env.AddFile("a.txt", "a", day)
	locked := env.AddFile("b.txt", "b", day)
	env.AddFile("c.txt", "c", day)

	errFS := testutil.NewErrorFS(env.FS).WithError(testutil.OpRename, locked, fs.ErrPermission)

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents"), organizer.WithFS(errFS))

	assert.Equal(t, 2, report.Count(organizer.StatusMoved))
	require.Equal(t, 1, report.Count(organizer.StatusFailed))

	failed := report.Filter(organizer.StatusFailed)[0]
	assert.Equal(t, "b.txt", failed.Name)
	assert.True(t, errors.IsErrorCode(failed.Err, errors.ErrFileMove))
	assert.ErrorIs(t, failed.Err, fs.ErrPermission)

	assert.True(t, env.Exists("b.txt"))
	assert.True(t, env.Exists("documents", "2024-03-01", "a.txt"))
	assert.True(t, env.Exists("documents", "2024-03-01", "c.txt"))
	assert.Contains(t, logs.String(), "Error processing 'b.txt'")
	assert.Contains(t, logs.String(), `"level":"error"`)
}

func TestOrganize_DirectoryCreationFailure(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	day := testutil.Date(2024, time.March, 1)

	env.AddFile("a.txt", "a", day)
	env.AddFile("b.jpg", "b", day)

	errFS := testutil.NewErrorFS(env.FS).
		WithError(testutil.OpMkdirAll, env.Path("documents"), fs.ErrPermission)

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents", ".jpg=images"),
		organizer.WithFS(errFS))

	res, ok := report.Lookup("a.txt")
	require.True(t, ok)
	assert.Equal(t, organizer.StatusFailed, res.Status)
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrDirCreate))

	assert.True(t, env.Exists("a.txt"))
	assert.True(t, env.Exists("images", "2024-03-01", "b.jpg"))
}

func TestOrganize_ReadOnlyFilesystem(t *testing.T) {
	testutil.CaptureLogs(t)
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/inbox", 0755))
	day := testutil.Date(2024, time.March, 1)
	for _, name := range []string{"a.txt", "b.txt"} {
		path := filepath.Join("/inbox", name)
		require.NoError(t, afero.WriteFile(base, path, []byte(name), 0644))
		require.NoError(t, base.Chtimes(path, day, day))
	}
	roFS := filesystem.NewAferoFS(afero.NewReadOnlyFs(base))

	report := organizer.Organize("/inbox", mustRules(t, "*=misc"), organizer.WithFS(roFS))

	assert.Equal(t, 2, report.Count(organizer.StatusFailed))
	for _, res := range report.Results {
		assert.True(t, errors.IsErrorCode(res.Err, errors.ErrDirCreate), res.Name)
	}
}

func TestOrganize_NotADirectory(t *testing.T) {
	t.Run("missing_directory_is_logged", func(t *testing.T) {
		logs := testutil.CaptureLogs(t)
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		report := organizer.Organize(env.Path("missing"), mustRules(t, "*=misc"),
			organizer.WithFS(env.FS))

		require.NotNil(t, report)
		assert.Empty(t, report.Results)
		assert.Contains(t, logs.String(), `"level":"error"`)
		assert.Contains(t, logs.String(), "does not exist")
	})

	t.Run("run_returns_the_error", func(t *testing.T) {
		testutil.CaptureLogs(t)
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		file := env.AddFile("plain.txt", "x", testutil.Date(2024, time.March, 1))

		_, err := organizer.New(organizer.WithFS(env.FS)).Run(file, mustRules(t, "*=misc"))

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotADirectory))
		assert.True(t, env.Exists("plain.txt"))
	})

	t.Run("unreadable_directory_is_logged", func(t *testing.T) {
		logs := testutil.CaptureLogs(t)
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		errFS := testutil.NewErrorFS(env.FS).WithError(testutil.OpReadDir, env.Dir, fs.ErrPermission)

		report := organizer.Organize(env.Dir, mustRules(t, "*=misc"), organizer.WithFS(errFS))

		assert.Empty(t, report.Results)
		assert.Contains(t, logs.String(), "Cannot organize directory")
	})
}

func TestOrganize_ConflictPolicy(t *testing.T) {
	day := testutil.Date(2024, time.March, 1)

	setup := func(t *testing.T) *testutil.TestEnvironment {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.AddFile("documents/2024-03-01/a.txt", "existing", day)
		env.AddFile("a.txt", "incoming", day)
		return env
	}

	t.Run("skip_leaves_both_files_untouched", func(t *testing.T) {
		logs := testutil.CaptureLogs(t)
		env := setup(t)

		report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents"),
			organizer.WithFS(env.FS), organizer.WithConflictPolicy(organizer.ConflictSkip))

		res, ok := report.Lookup("a.txt")
		require.True(t, ok)
		assert.Equal(t, organizer.StatusFailed, res.Status)
		assert.True(t, errors.IsErrorCode(res.Err, errors.ErrDestinationExists))
		assert.Equal(t, "incoming", env.ReadFile("a.txt"))
		assert.Equal(t, "existing", env.ReadFile("documents", "2024-03-01", "a.txt"))
		assert.Contains(t, logs.String(),
			`"destination":"`+env.Path("documents", "2024-03-01", "a.txt")+`"`,
			"error details are logged as fields")
	})

	t.Run("rename_picks_first_free_suffix", func(t *testing.T) {
		testutil.CaptureLogs(t)
		env := setup(t)
		env.AddFile("documents/2024-03-01/a_1.txt", "older copy", day)

		report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents"),
			organizer.WithFS(env.FS), organizer.WithConflictPolicy(organizer.ConflictRename))

		res, ok := report.Lookup("a.txt")
		require.True(t, ok)
		assert.Equal(t, organizer.StatusMoved, res.Status)
		assert.Equal(t, env.Path("documents", "2024-03-01", "a_2.txt"), res.Destination)
		assert.Equal(t, "incoming", env.ReadFile("documents", "2024-03-01", "a_2.txt"))
		assert.Equal(t, "existing", env.ReadFile("documents", "2024-03-01", "a.txt"))
		assert.False(t, env.Exists("a.txt"))
	})
}

// slowLstatFS widens the gap between checking a destination name and
// moving a file onto it
type slowLstatFS struct {
	types.FS
	delay time.Duration
}

func (s slowLstatFS) Lstat(name string) (fs.FileInfo, error) {
	time.Sleep(s.delay)
	return s.FS.Lstat(name)
}

func TestOrganize_RenameWithWorkersNeverOverwrites(t *testing.T) {
	testutil.CaptureLogs(t)
	day := testutil.Date(2024, time.March, 1)

	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("documents/2024-03-01/a.txt", "existing", day)
	names := []string{"a.txt", "a_1.txt", "a_2.txt", "a_3.txt", "a_1_1.txt", "a_2_1.txt", "a_4.txt", "a_5.txt"}
	for _, name := range names {
		env.AddFile(name, "content of "+name, day)
	}

	report := organizer.Organize(env.Dir, mustRules(t, ".txt=documents"),
		organizer.WithFS(slowLstatFS{FS: env.FS, delay: 2 * time.Millisecond}),
		organizer.WithWorkers(len(names)),
		organizer.WithConflictPolicy(organizer.ConflictRename))

	require.Equal(t, len(names), report.Count(organizer.StatusMoved))

	entries, err := env.FS.ReadDir(env.Path("documents", "2024-03-01"))
	require.NoError(t, err)
	assert.Len(t, entries, len(names)+1, "every file keeps its own destination")

	seen := map[string]bool{}
	for _, res := range report.Results {
		assert.False(t, seen[res.Destination], "destination %s claimed twice", res.Destination)
		seen[res.Destination] = true
		content, err := env.FS.ReadFile(res.Destination)
		require.NoError(t, err)
		assert.Equal(t, "content of "+res.Name, string(content))
	}
	assert.Equal(t, "existing", env.ReadFile("documents", "2024-03-01", "a.txt"))
}

func TestParseConflictPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    organizer.ConflictPolicy
		wantErr bool
	}{
		{"skip", organizer.ConflictSkip, false},
		{"RENAME", organizer.ConflictRename, false},
		{"", organizer.ConflictSkip, false},
		{"overwrite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := organizer.ParseConflictPolicy(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrganize_WorkersMatchSequentialRun(t *testing.T) {
	testutil.CaptureLogs(t)
	table := mustRules(t, ".txt=documents", ".jpg=images", "*=misc")

	build := func(t *testing.T) *testutil.TestEnvironment {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		for i := 0; i < 20; i++ {
			ext := []string{"txt", "jpg", "bin", "md"}[i%4]
			env.AddFile(fmt.Sprintf("file%02d.%s", i, ext), "x", testutil.Date(2024, time.March, 1+i%3))
		}
		return env
	}

	seqEnv := build(t)
	seq := organizer.Organize(seqEnv.Dir, table, organizer.WithFS(seqEnv.FS))

	parEnv := build(t)
	errFS := testutil.NewErrorFS(parEnv.FS).
		WithError(testutil.OpRename, parEnv.Path("file05.jpg"), fs.ErrPermission)
	par := organizer.Organize(parEnv.Dir, table, organizer.WithFS(errFS), organizer.WithWorkers(4))

	assert.Equal(t, 20, seq.Count(organizer.StatusMoved))
	assert.Equal(t, 19, par.Count(organizer.StatusMoved))
	assert.Equal(t, 1, par.Count(organizer.StatusFailed))
	require.Len(t, par.Results, len(seq.Results))

	for i, res := range seq.Results {
		assert.Equal(t, res.Name, par.Results[i].Name, "results are sorted by name")
		if res.Name == "file05.jpg" {
			continue
		}
		rel, err := filepath.Rel(seqEnv.Dir, res.Destination)
		require.NoError(t, err)
		assert.True(t, parEnv.Exists(rel), rel)
	}
}

func TestOrganize_CrossDeviceFallback(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	mtime := testutil.Date(2024, time.March, 1)
	src := env.AddFile("movie.mkv", "frames", mtime)

	errFS := testutil.NewErrorFS(env.FS).WithError(testutil.OpRename, src, syscall.EXDEV)

	report := organizer.Organize(env.Dir, mustRules(t, ".mkv=videos"), organizer.WithFS(errFS))

	require.Equal(t, 1, report.Count(organizer.StatusMoved))
	dest := []string{"videos", "2024-03-01", "movie.mkv"}
	assert.Equal(t, "frames", env.ReadFile(dest...))
	assert.True(t, env.ModTime(dest...).Equal(mtime))
	assert.False(t, env.Exists("movie.mkv"))
}

func TestOrganize_CrossDeviceSourceRemovalFails(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	src := env.AddFile("movie.mkv", "frames", testutil.Date(2024, time.March, 1))
	dest := env.Path("videos", "2024-03-01", "movie.mkv")

	errFS := testutil.NewErrorFS(env.FS).
		WithError(testutil.OpRename, src, syscall.EXDEV).
		WithError(testutil.OpRemove, src, fs.ErrPermission)

	report := organizer.Organize(env.Dir, mustRules(t, ".mkv=videos"), organizer.WithFS(errFS))

	res, ok := report.Lookup("movie.mkv")
	require.True(t, ok)
	assert.Equal(t, organizer.StatusFailed, res.Status)
	assert.True(t, errors.IsErrorCode(res.Err, errors.ErrFileMove))
	assert.True(t, env.Exists("movie.mkv"))
	assert.True(t, env.Exists("videos", "2024-03-01", "movie.mkv"), "copy is kept when only the removal fails")
	assert.Equal(t, dest, res.Destination)
}

func TestOrganize_SymlinksOnRealFilesystem(t *testing.T) {
	testutil.CaptureLogs(t)
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	day := testutil.Date(2024, time.March, 1)

	outside := t.TempDir()
	target := filepath.Join(outside, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("t"), 0644))
	require.NoError(t, os.Chtimes(target, day, day))
	require.NoError(t, os.Symlink(target, env.Path("link.txt")))
	require.NoError(t, os.Symlink(outside, env.Path("linkdir.txt")))

	report := organizer.Organize(env.Dir, mustRules(t, "*=misc"), organizer.WithFS(env.FS))

	assert.Equal(t, 1, report.Count(organizer.StatusMoved))
	assert.True(t, env.Exists("misc", "2024-03-01", "link.txt"))
	assert.True(t, env.Exists("linkdir.txt"), "links to directories are skipped")
	_, err := os.Stat(target)
	assert.NoError(t, err, "the link target itself is not moved")
}
