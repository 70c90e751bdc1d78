// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// GenerateCUE renders a Config as a CUE document that round-trips through
// the loader. Used by 'straycat config dump' and 'straycat config init'.
func GenerateCUE(cfg *Config) string {
	var b strings.Builder

	b.WriteString("// straycat configuration\n")
	if cfg.Python != "" {
		fmt.Fprintf(&b, "python: %q\n", cfg.Python)
	}
	fmt.Fprintf(&b, "venv_dir:     %q\n", cfg.VenvDir)
	fmt.Fprintf(&b, "requirements: %q\n", cfg.Requirements)
	fmt.Fprintf(&b, "entrypoint:   %q\n", cfg.Entrypoint)
	fmt.Fprintf(&b, "data_dir:     %q\n", cfg.DataDir)
	if cfg.LogFile != "" {
		fmt.Fprintf(&b, "log_file: %q\n", cfg.LogFile)
	}

	if len(cfg.Hooks.PreSetup) > 0 || len(cfg.Hooks.PostSetup) > 0 {
		b.WriteString("hooks: {\n")
		writeHookList(&b, "pre_setup", cfg.Hooks.PreSetup)
		writeHookList(&b, "post_setup", cfg.Hooks.PostSetup)
		b.WriteString("}\n")
	}

	b.WriteString("serve: {\n")
	fmt.Fprintf(&b, "\thost: %q\n", cfg.Serve.Host)
	fmt.Fprintf(&b, "\tport: %d\n", cfg.Serve.Port)
	b.WriteString("}\n")

	b.WriteString("ui: {\n")
	fmt.Fprintf(&b, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&b, "\tverbose:      %t\n", cfg.UI.Verbose)
	b.WriteString("}\n")

	return b.String()
}

func writeHookList(b *strings.Builder, name string, hooks []string) {
	if len(hooks) == 0 {
		return
	}
	fmt.Fprintf(b, "\t%s: [\n", name)
	for _, h := range hooks {
		fmt.Fprintf(b, "\t\t%q,\n", h)
	}
	b.WriteString("\t]\n")
}
