package actions_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stacktrack.dev/stacktrack/internal/actions"
)

func TestInstallHooks(t *testing.T) {
	const exe = "/usr/local/bin/stacktrack"

	newHooksContext := func(t *testing.T) (*fakeRunner, string) {
		t.Helper()
		runner := newFakeRunner()
		runner.gitDir = t.TempDir()
		return runner, filepath.Join(runner.gitDir, "hooks")
	}

	t.Run("writes executable hooks", func(t *testing.T) {
		runner, hooksDir := newHooksContext(t)
		ctx, _ := newTestContext(t, runner, newStack(t, runner))

		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: exe}))

		postCommit, err := os.ReadFile(filepath.Join(hooksDir, "post-commit"))
		require.NoError(t, err)
		require.Equal(t, "#!/bin/sh\n# installed by stacktrack\nexec '/usr/local/bin/stacktrack' post-commit\n", string(postCommit))

		postCheckout, err := os.ReadFile(filepath.Join(hooksDir, "post-checkout"))
		require.NoError(t, err)
		require.Contains(t, string(postCheckout), `exec '/usr/local/bin/stacktrack' post-checkout "$2" "$3"`)

		info, err := os.Stat(filepath.Join(hooksDir, "post-checkout"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("reinstalling over its own hooks succeeds", func(t *testing.T) {
		runner, _ := newHooksContext(t)
		ctx, _ := newTestContext(t, runner, newStack(t, runner))

		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: exe}))
		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: "/opt/stacktrack"}))
	})

	t.Run("foreign hooks need force or confirmation", func(t *testing.T) {
		runner, hooksDir := newHooksContext(t)
		require.NoError(t, os.MkdirAll(hooksDir, 0755))
		foreign := filepath.Join(hooksDir, "post-commit")
		require.NoError(t, os.WriteFile(foreign, []byte("#!/bin/sh\necho mine\n"), 0644))

		ctx, _ := newTestContext(t, runner, newStack(t, runner))
		err := actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: exe})
		require.ErrorContains(t, err, "--force")
		content, _ := os.ReadFile(foreign)
		require.Equal(t, "#!/bin/sh\necho mine\n", string(content))

		prompter := &scriptedPrompter{confirm: true}
		ctx.Prompter = prompter
		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: exe}))
		require.Len(t, prompter.asked, 1)
		content, _ = os.ReadFile(foreign)
		require.Contains(t, string(content), "# installed by stacktrack")
		info, err := os.Stat(foreign)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})

	t.Run("force replaces foreign hooks without asking", func(t *testing.T) {
		runner, hooksDir := newHooksContext(t)
		require.NoError(t, os.MkdirAll(hooksDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "post-checkout"), []byte("#!/bin/sh\n"), 0755))

		prompter := &scriptedPrompter{}
		ctx, _ := newTestContext(t, runner, newStack(t, runner))
		ctx.Prompter = prompter

		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: exe, Force: true}))
		require.Empty(t, prompter.asked)
	})

	t.Run("executable path is not expanded by the shell", func(t *testing.T) {
		runner, hooksDir := newHooksContext(t)
		ctx, _ := newTestContext(t, runner, newStack(t, runner))

		binDir := filepath.Join(t.TempDir(), "it's $HOME `id`")
		require.NoError(t, os.MkdirAll(binDir, 0755))
		argsFile := filepath.Join(t.TempDir(), "args")
		fakeExe := filepath.Join(binDir, "stacktrack")
		require.NoError(t, os.WriteFile(fakeExe, []byte("#!/bin/sh\necho \"$@\" > '"+argsFile+"'\n"), 0755))

		require.NoError(t, actions.InstallHooks(ctx, actions.InstallHooksOptions{Executable: fakeExe}))

		hook := exec.Command("/bin/sh", filepath.Join(hooksDir, "post-checkout"), "old", "new", "1")
		output, err := hook.CombinedOutput()
		require.NoError(t, err, string(output))

		args, err := os.ReadFile(argsFile)
		require.NoError(t, err)
		require.Equal(t, "post-checkout new 1\n", string(args))
	})
}
