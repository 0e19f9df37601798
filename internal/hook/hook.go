// Package hook installs the git pre-push hook that commits staged changes
// with a generated message.
package hook

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/thomas-vilte/aigit/internal/errors"
)

const (
	Name = "pre-push"

	// marker identifies hooks written by Install.
	marker = "# installed by aigit"

	scriptFormat = `#!/bin/sh
%s
if ! git diff --cached --quiet; then
  %s commit || exit 1
fi
exit 0
`
)

// Script renders the hook body for binary. The path is shell-quoted.
func Script(binary string) string {
	if binary == "" {
		binary = "aigit"
	}
	return fmt.Sprintf(scriptFormat, marker, shellquote.Join(binary))
}

// Install writes the pre-push hook into hooksDir and returns its path. An
// existing hook that was not written by Install is kept unless force is set.
func Install(hooksDir, binary string, force bool) (string, error) {
	path := filepath.Join(hooksDir, Name)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if !force && !bytes.Contains(existing, []byte(marker)) {
			return "", errors.ErrHookExists.WithContext("path", path)
		}
	case !os.IsNotExist(err):
		return "", errors.ErrInstallHook.WithError(err).WithContext("path", path)
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", errors.ErrInstallHook.WithError(err).WithContext("path", hooksDir)
	}
	if err := os.WriteFile(path, []byte(Script(binary)), 0o755); err != nil {
		return "", errors.ErrInstallHook.WithError(err).WithContext("path", path)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", errors.ErrInstallHook.WithError(err).WithContext("path", path)
	}
	return path, nil
}
