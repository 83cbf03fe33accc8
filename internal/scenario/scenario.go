// Package scenario loads simulation scenarios from SCOPE files, a TOML-based
// format listing the airport being controlled and the traffic at the start of
// the session.
//
// A file is either a DATA file holding a scenario, or a MANIFEST file listing
// other files, relative to itself, whose contents are combined into one
// scenario.
package scenario

import (
	"errors"
	"os"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/tracon/scopecmd/internal/sim"
)

const MaxManifestRecursionDepth = 16

var (
	// ErrManifestEmpty is returned when a manifest is read successfully but
	// lists no files that could be loaded.
	ErrManifestEmpty = errors.New("does not list any valid files to include")

	// ErrManifestStackOverflow is returned when manifests include other
	// manifests more than MaxManifestRecursionDepth deep.
	ErrManifestStackOverflow = errors.New("too many manifests deep")

	// ErrManifestCircularRef is returned when a manifest is included again by
	// one of the files it includes.
	ErrManifestCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// Scenario is a loaded scenario, ready to run.
type Scenario struct {
	// Name is the human-readable name of the scenario.
	Name string

	// State is the simulation at the start of the scenario.
	State sim.State
}

// FileInfo is the header every SCOPE file has.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Default gives the scenario used when none is loaded: no airport and no
// traffic.
func Default() Scenario {
	st, _ := sim.New("")
	return Scenario{
		Name:  "Empty",
		State: st,
	}
}

// Load loads a scenario from the SCOPE file at path, following manifests.
func Load(path string) (Scenario, error) {
	unmarshaled, err := recursiveUnmarshalResource(path, nil)
	if err != nil {
		return Scenario{}, err
	}

	return parseScenario(unmarshaled)
}

// Parse loads a scenario from the contents of a single SCOPE DATA file. Since
// there is no file to be relative to, manifests are not allowed.
func Parse(data []byte) (Scenario, error) {
	unmarshaled, err := unmarshalScenario(data)
	if err != nil {
		return Scenario{}, err
	}

	return parseScenario(unmarshaled)
}

// ScanFileInfo reads the SCOPE header from data. Only the top-level keys before
// the first table header are parsed.
func ScanFileInfo(data []byte) (FileInfo, error) {
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine && data[b] == '[' {
			topLevelEnd = b
			break
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}

// LoadFileInfo reads the SCOPE header of the file at path.
func LoadFileInfo(path string) (FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileInfo{}, err
	}
	return ScanFileInfo(data)
}
