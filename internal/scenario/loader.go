package scenario

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"depman/pkg/logging"
)

// LoadScenarios loads scenarios from a YAML file or from every YAML file
// below a directory. Scenarios are returned ordered by name; names must be
// unique.
func LoadScenarios(path string) ([]Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scenario path does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to stat scenario path: %w", err)
	}

	var scenarios []Scenario
	if info.IsDir() {
		scenarios, err = loadScenariosFromDirectory(path)
	} else {
		scenarios, err = loadScenariosFromFile(path)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(scenarios))
	for _, s := range scenarios {
		if other, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("duplicate scenario name %q in %s and %s", s.Name, other, s.File)
		}
		seen[s.Name] = s.File
	}

	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	logging.Debug("Scenario", "Loaded %d scenarios from %s", len(scenarios), path)
	return scenarios, nil
}

// loadScenariosFromDirectory loads all YAML scenario files from a directory
func loadScenariosFromDirectory(dirPath string) ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		loaded, err := loadScenariosFromFile(path)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios from %s: %w", dirPath, err)
	}

	return scenarios, nil
}

// loadScenariosFromFile loads every scenario document of a YAML file. A file
// may hold several scenarios separated by "---".
func loadScenariosFromFile(filePath string) ([]Scenario, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	defer f.Close()

	var scenarios []Scenario
	dec := yaml.NewDecoder(f)
	for {
		var s Scenario
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse YAML in %s: %w", filePath, err)
		}
		s.File = filePath
		if err := validateScenario(s); err != nil {
			return nil, fmt.Errorf("invalid scenario in %s: %w", filePath, err)
		}
		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

// validateScenario validates that a scenario has required fields
func validateScenario(s Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if strings.TrimSpace(s.Script) == "" {
		return fmt.Errorf("scenario %s has no script", s.Name)
	}
	return nil
}

// isYAMLFile checks if a file has a YAML extension
func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
