package completion_helper

import (
	"context"
	"fmt"
	"strings"

	"github.com/thomas-vilte/aigit/internal/config"
	domainErrors "github.com/thomas-vilte/aigit/internal/errors"
	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete prints all flags of the current command to facilitate shell completion.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	w := cmd.Root().Writer
	for _, f := range cmd.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				_, _ = fmt.Fprintln(w, "-"+name)
			} else {
				_, _ = fmt.Fprintln(w, "--"+name)
			}
		}
	}
}

// ResolveProvider returns the provider named by flag, or fallback when the
// flag is empty.
func ResolveProvider(flag, fallback string) (config.Provider, error) {
	name := strings.ToLower(strings.TrimSpace(flag))
	if name == "" {
		name = fallback
	}
	p := config.Provider(name)
	if !config.IsSupportedProvider(p) {
		return "", domainErrors.ErrUnknownProvider.WithContext("provider", name)
	}
	return p, nil
}
