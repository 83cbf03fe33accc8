package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	formatName   = "SCOPE"
	typeData     = "DATA"
	typeManifest = "MANIFEST"
)

// recursiveUnmarshalResource reads the file at path, following it if it is a
// manifest. manifStack is the manifests already being read, used to detect
// circular references and to limit depth.
//
// A circular reference is skipped rather than failing the load. An empty
// manifest is only an error if it is the first one read.
func recursiveUnmarshalResource(path string, manifStack []string) (topLevelScenario, error) {
	path = filepath.Clean(path)

	fileData, err := os.ReadFile(path)
	if err != nil {
		return topLevelScenario{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}

	fileInfo, err := ScanFileInfo(fileData)
	if err != nil {
		return topLevelScenario{}, fmt.Errorf("%q: detecting file type: %w", path, err)
	}

	if strings.ToUpper(fileInfo.Format) != formatName {
		return topLevelScenario{}, fmt.Errorf("%q: file does not have a 'format = \"%s\"' entry", path, formatName)
	}

	switch strings.ToUpper(fileInfo.Type) {
	case typeData:
		unmarshaled, err := unmarshalScenario(fileData)
		if err != nil {
			return unmarshaled, fmt.Errorf("scenario file %q: %w", path, err)
		}
		return unmarshaled, nil
	case typeManifest:
		if len(manifStack) >= MaxManifestRecursionDepth {
			return topLevelScenario{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestStackOverflow)
		}
		for i := range manifStack {
			if manifStack[i] == path {
				return topLevelScenario{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestCircularRef)
			}
		}

		manif, err := unmarshalManifest(fileData)
		if err != nil {
			return topLevelScenario{}, fmt.Errorf("manifest file %q: %w", path, err)
		}

		if len(manif.Files) < 1 && len(manifStack) == 0 {
			return topLevelScenario{}, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}

		manifSubStack := make([]string, len(manifStack)+1)
		copy(manifSubStack, manifStack)
		manifSubStack[len(manifSubStack)-1] = path

		manifDir := filepath.Dir(path)

		var combined topLevelScenario
		processedFiles := 0
		for _, relPath := range manif.Files {
			included, err := recursiveUnmarshalResource(filepath.Join(manifDir, relPath), manifSubStack)
			if err != nil {
				if errors.Is(err, ErrManifestCircularRef) {
					continue
				}
				return topLevelScenario{}, fmt.Errorf("in file included by manifest file %q: %w", path, err)
			}

			if err := mergeHeader(&combined.Scenario, included.Scenario); err != nil {
				return topLevelScenario{}, fmt.Errorf("in file included by manifest file %q: %w", path, err)
			}
			combined.Aircraft = append(combined.Aircraft, included.Aircraft...)
			processedFiles++
		}

		if len(manifStack) == 0 && processedFiles == 0 {
			return combined, fmt.Errorf("manifest file %q: %w", path, ErrManifestEmpty)
		}
		return combined, nil
	default:
		return topLevelScenario{}, fmt.Errorf("%q: file does not have 'type = ' entry set to either %q or %q", path, typeData, typeManifest)
	}
}

// mergeHeader copies each key set in src into dest. A key set in both is an
// error.
func mergeHeader(dest *header, src header) error {
	merge := func(key string, d *string, s string) error {
		if s == "" {
			return nil
		}
		if *d != "" {
			return fmt.Errorf("scenario: %s: already defined as %q", key, *d)
		}
		*d = s
		return nil
	}

	if err := merge("name", &dest.Name, src.Name); err != nil {
		return err
	}
	if err := merge("airport", &dest.Airport, src.Airport); err != nil {
		return err
	}
	return merge("airac", &dest.AIRAC, src.AIRAC)
}

// unmarshalScenario unmarshals scenario data from the given bytes. It does not
// check the scenario itself.
func unmarshalScenario(tomlData []byte) (topLevelScenario, error) {
	var scn topLevelScenario
	if err := toml.Unmarshal(tomlData, &scn); err != nil {
		return scn, err
	}

	if strings.ToUpper(scn.Format) != formatName {
		return scn, fmt.Errorf("in header: 'format' key must exist and be set to %q", formatName)
	}
	if strings.ToUpper(scn.Type) != typeData {
		return scn, fmt.Errorf("in header: 'type' must exist and be set to %q", typeData)
	}

	return scn, nil
}

func unmarshalManifest(tomlData []byte) (topLevelManifest, error) {
	var manif topLevelManifest
	if err := toml.Unmarshal(tomlData, &manif); err != nil {
		return manif, err
	}

	if strings.ToUpper(manif.Format) != formatName {
		return manif, fmt.Errorf("in header: 'format' key must exist and be set to %q", formatName)
	}
	if strings.ToUpper(manif.Type) != typeManifest {
		return manif, fmt.Errorf("in header: 'type' must exist and be set to %q", typeManifest)
	}

	return manif, nil
}
