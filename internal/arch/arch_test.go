// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type pkg struct {
	ImportPath string
	Imports    []string
}

const module = "snpscan/"

// bans maps a package prefix to module prefixes it must not import.
// Algorithms stay free of I/O and CLI; rendering stays free of the CLI.
var bans = map[string][]string{
	"snpscan/core/": {
		"snpscan/internal/", "snpscan/pkg/", "snpscan/cmd/",
	},
	"snpscan/internal/pipeline": {
		"snpscan/internal/loader", "snpscan/internal/variant",
		"snpscan/internal/output", "snpscan/internal/writers",
		"snpscan/internal/appcore", "snpscan/internal/app", "snpscan/cmd/",
	},
	"snpscan/internal/loader": {
		"snpscan/internal/pipeline", "snpscan/internal/writers",
		"snpscan/internal/appcore", "snpscan/internal/app", "snpscan/cmd/",
	},
	"snpscan/internal/variant": {
		"snpscan/internal/pipeline", "snpscan/internal/writers",
		"snpscan/internal/appcore", "snpscan/internal/app", "snpscan/cmd/",
	},
	"snpscan/internal/output": {
		"snpscan/internal/writers", "snpscan/internal/loader",
		"snpscan/internal/appcore", "snpscan/internal/app", "snpscan/cmd/",
	},
	"snpscan/internal/writers": {
		"snpscan/internal/loader",
		"snpscan/internal/appcore", "snpscan/internal/app", "snpscan/cmd/",
	},
	"snpscan/pkg/": {
		"snpscan/internal/", "snpscan/core/", "snpscan/cmd/",
	},
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	require.NoError(t, cmd.Run(), "go list")
	dec := json.NewDecoder(&out)

	var violations []string
	seen := 0
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, module) {
			continue
		}
		seen++
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(p.ImportPath, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, p.ImportPath+" → "+dep)
					}
				}
			}
		}
	}
	require.NotZero(t, seen, "go list returned no module packages")
	require.Empty(t, violations, "import boundary violations:\n  %s", strings.Join(violations, "\n  "))
}
