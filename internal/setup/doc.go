// Package setup installs and removes the git-cc commit-msg hook.
//
// The hook lints every message git records, including ones written with
// plain `git commit`, by running `git-cc lint --file "$1"`. Command-layer
// adapters in cmd/git-cc handle flags and output and delegate here:
//
//	path := setup.HookPath(hooksDir)
//	status := setup.CheckHookStatus(path)
//	chained, err := setup.InstallHook(path, chain, force)
//	removed, restored, err := setup.RemoveHook(path)
package setup
