package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	t.Parallel()

	cwd := filepath.Join(string(filepath.Separator), "srv", "app")

	testCases := []struct {
		name     string
		req      Request
		expected []string
	}{
		{
			name: "defaults",
			req:  Request{CWD: cwd},
			expected: []string{
				filepath.Join(cwd, ".menv"),
				filepath.Join(cwd, ".menv.local"),
			},
		},
		{
			name: "profile appends profile layers",
			req:  Request{CWD: cwd, Profile: "prod"},
			expected: []string{
				filepath.Join(cwd, ".menv"),
				filepath.Join(cwd, ".menv.local"),
				filepath.Join(cwd, ".menv.prod"),
				filepath.Join(cwd, ".menv.prod.local"),
			},
		},
		{
			name: "explicit files replace defaults and keep order",
			req: Request{
				CWD:     cwd,
				Profile: "prod",
				Files:   []string{"config/.menv.custom", "/etc/menv/shared", "./a/../b"},
			},
			expected: []string{
				filepath.Join(cwd, "config", ".menv.custom"),
				"/etc/menv/shared",
				filepath.Join(cwd, "b"),
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			files, err := Files(testCase.req)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, files)
		})
	}
}

func TestFiles_EmptyCWDUsesWorkingDirectory(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	files, err := Files(Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, ".menv"), filepath.Join(wd, ".menv.local")}, files)
}

func TestFiles_RelativeCWD(t *testing.T) {
	t.Parallel()

	wd, err := os.Getwd()
	require.NoError(t, err)

	files, err := Files(Request{CWD: "testdata"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "testdata", ".menv"), files[0])
}

func TestDirs(t *testing.T) {
	t.Parallel()

	dirs := Dirs([]string{
		"/srv/app/.menv",
		"/srv/app/.menv.local",
		"/etc/menv/shared",
		"/srv/app/.menv.prod",
	})

	assert.Equal(t, []string{"/srv/app", "/etc/menv"}, dirs)
	assert.Empty(t, Dirs(nil))
}
