package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c to its default and clears Changed, so
// tests sharing the package-level commands do not leak state.
func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			def := strings.Trim(f.DefValue, "[]")
			var items []string
			if def != "" {
				items = strings.Split(def, ",")
			}
			require.NoError(t, sv.Replace(items))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	fileConfig = Config{}
}

// resetAll resets every command and registers the reset again for cleanup.
func resetAll(t *testing.T) {
	t.Helper()
	for _, c := range []*cobra.Command{rootCmd, runCmd, sweepCmd} {
		resetFlags(t, c)
	}
	t.Cleanup(func() {
		for _, c := range []*cobra.Command{rootCmd, runCmd, sweepCmd} {
			resetFlags(t, c)
		}
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const fourProcessFile = "4\n1, 0, 7\n2, 2, 4\n3, 4, 1\n4, 5, 4\n"
