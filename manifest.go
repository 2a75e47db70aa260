package ferropb

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/ferropb/ferropb/ir"
	"github.com/ferropb/ferropb/rust"
)

// manifestPath returns where a schema file's manifest is written: next
// to the bindings generated from that schema, so a run over several
// schema files yields one manifest per schema.
func manifestPath(schemaPath string) string {
	return strings.TrimSuffix(schemaPath, ".proto") + ".manifest.json"
}

// Manifest describes one generation run. When Config.Manifest is set it
// is written next to the generated files so build integration can pick
// up the output list without re-running the generator.
type Manifest struct {
	// Source is the schema file the run was generated from.
	Source string `json:"source"`

	// Kernel is the runtime kernel the bindings target.
	Kernel string `json:"kernel"`

	// Groups is the number of oneof groups generated.
	Groups int `json:"groups"`

	// Files lists the generated output files.
	Files []ManifestFile `json:"files"`

	// Warnings lists non-fatal conditions encountered during the run.
	Warnings []ManifestWarning `json:"warnings,omitempty"`
}

// ManifestFile identifies one generated output file.
type ManifestFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ManifestWarning is the serialized form of an ir.Warning.
type ManifestWarning struct {
	Code    string `json:"code"`
	Symbol  string `json:"symbol,omitempty"`
	Message string `json:"message"`
}

// buildManifest assembles the manifest document for a completed run.
func buildManifest(file *ir.File, kernel rust.Kernel, res *rust.GenerateResult) *Manifest {
	m := &Manifest{
		Source: file.Path,
		Kernel: string(kernel),
		Groups: res.GroupsGenerated,
		Files:  make([]ManifestFile, 0, len(res.Files)),
	}
	for _, f := range res.Files {
		m.Files = append(m.Files, ManifestFile{Path: f.Path, Size: f.Size})
	}
	for _, w := range res.Warnings {
		m.Warnings = append(m.Warnings, ManifestWarning{
			Code:    w.Code,
			Symbol:  w.Symbol,
			Message: w.Message,
		})
	}
	return m
}

// encodeManifest renders the manifest as indented JSON with a trailing
// newline.
func encodeManifest(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}
