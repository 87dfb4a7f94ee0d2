// Package storage provides file system operations for .kex/ directories.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jacksmith/kex/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// kexDir is the name of the kex directory.
	kexDir = ".kex"
	// problemsDir is the subdirectory for problem files.
	problemsDir = "problems"
	// resultsDir is the subdirectory for solved matchings.
	resultsDir = "results"
	// configFile is the name of the config file within .kex/.
	configFile = "config.yaml"

	// ExampleProblem is the name of the problem created by Init.
	ExampleProblem = "example"
)

// StorageConfig contains settings stored in .kex/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .kex/ directory.
type Storage struct {
	root string // path to directory containing .kex/
}

// Open returns a Storage for the given directory.
// Returns error if .kex/ does not exist.
func Open(dir string) (*Storage, error) {
	kexPath := filepath.Join(dir, kexDir)
	info, err := os.Stat(kexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".kex/ directory not found in %s (run kex init)", dir)
		}
		return nil, fmt.Errorf("failed to access .kex/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".kex is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates .kex/ with an example problem.
// Returns error if .kex/ already exists.
func Init(dir string) (*Storage, error) {
	kexPath := filepath.Join(dir, kexDir)

	if _, err := os.Stat(kexPath); err == nil {
		return nil, fmt.Errorf(".kex/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .kex/: %w", err)
	}

	for _, sub := range []string{problemsDir, resultsDir} {
		if err := os.MkdirAll(filepath.Join(kexPath, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create .kex/%s/: %w", sub, err)
		}
	}

	cfg := StorageConfig{Version: 1}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(kexPath, configFile)
	if err := os.WriteFile(cfgPath, cfgData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	s := &Storage{root: dir}
	if err := s.SaveProblem(exampleProblem()); err != nil {
		// Clean up on failure
		os.RemoveAll(kexPath)
		return nil, fmt.Errorf("failed to create example problem: %w", err)
	}

	return s, nil
}

// exampleProblem has four donor-recipient pairs and two non-directed donors.
func exampleProblem() *model.Problem {
	p := &model.Problem{
		Name:        ExampleProblem,
		Description: "Four pairs and two non-directed donors.",
		Scores: [][]float64{
			{-2, -1, 10.2, 13.1},
			{0.2, -2, -1, 1},
			{0.1, 10.2, 10.3, -2},
			{-1, -1, -2, 10},
			{0.2, 0.4, -1, 0.5},
			{0.2, -1, -1, 0.5},
		},
	}
	recipients := []string{"R1", "R2", "R3", "R4"}
	for _, id := range recipients {
		p.Recipients = append(p.Recipients, model.Recipient{ID: id, Country: "CZE", BloodGroup: "A"})
	}
	related := map[int]string{0: "R1", 1: "R2", 2: "R4", 3: "R3"}
	for d := range p.Scores {
		donor := model.Donor{
			ID:         fmt.Sprintf("D%d", d+1),
			Country:    "CZE",
			BloodGroup: "A",
			Type:       model.DonorTypeNonDirected,
		}
		if r, ok := related[d]; ok {
			donor.Type = model.DonorTypeDonor
			donor.RelatedRecipient = r
		}
		p.Donors = append(p.Donors, donor)
	}
	return p
}

// Root returns the root directory containing .kex/.
func (s *Storage) Root() string {
	return s.root
}

// KexPath returns the path to the .kex/ directory.
func (s *Storage) KexPath() string {
	return filepath.Join(s.root, kexDir)
}

// checkName rejects names that would escape the workspace.
func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid %s name %q", kind, name)
	}
	return nil
}

func (s *Storage) problemPath(name string) string {
	return filepath.Join(s.root, kexDir, problemsDir, name+".yaml")
}

func (s *Storage) resultPath(name string) string {
	return filepath.Join(s.root, kexDir, resultsDir, name+".yaml")
}

// LoadProblem loads a problem by name.
func (s *Storage) LoadProblem(name string) (*model.Problem, error) {
	if err := checkName("problem", name); err != nil {
		return nil, err
	}
	path := s.problemPath(name)

	// Check if file exists first to give a clearer error message
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("problem %q not found", name)
		}
		return nil, fmt.Errorf("failed to access problem file: %w", err)
	}

	p, err := model.LoadProblem(path)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = name
	}
	return p, nil
}

// SaveProblem saves a problem file to .kex/problems/{name}.yaml.
func (s *Storage) SaveProblem(p *model.Problem) error {
	if err := checkName("problem", p.Name); err != nil {
		return err
	}
	return model.SaveProblem(s.problemPath(p.Name), p)
}

// ProblemPath returns the file path of a problem, for editing in place.
func (s *Storage) ProblemPath(name string) (string, error) {
	if err := checkName("problem", name); err != nil {
		return "", err
	}
	return s.problemPath(name), nil
}

// ListProblems returns all problem names, sorted.
func (s *Storage) ListProblems() ([]string, error) {
	return s.list(problemsDir)
}

// ListResults returns the names of all problems with saved results, sorted.
func (s *Storage) ListResults() ([]string, error) {
	return s.list(resultsDir)
}

func (s *Storage) list(sub string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, kexDir, sub))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s directory: %w", sub, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// DeleteProblem removes a problem file and its results.
func (s *Storage) DeleteProblem(name string) error {
	if err := checkName("problem", name); err != nil {
		return err
	}
	if err := os.Remove(s.problemPath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("problem %q not found", name)
		}
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	return s.DeleteResult(name)
}

// ProblemExists checks if a problem with the given name exists.
func (s *Storage) ProblemExists(name string) bool {
	if checkName("problem", name) != nil {
		return false
	}
	_, err := os.Stat(s.problemPath(name))
	return err == nil
}

// LoadResult loads the saved matchings of a problem.
func (s *Storage) LoadResult(name string) (*model.Result, error) {
	if err := checkName("problem", name); err != nil {
		return nil, err
	}
	path := s.resultPath(name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no results for problem %q (run kex solve %s)", name, name)
		}
		return nil, fmt.Errorf("failed to access result file: %w", err)
	}
	return model.LoadResult(path)
}

// SaveResult saves matchings to .kex/results/{problem}.yaml, replacing
// earlier results of the same problem.
func (s *Storage) SaveResult(r *model.Result) error {
	if err := checkName("problem", r.Problem); err != nil {
		return err
	}
	return model.SaveResult(s.resultPath(r.Problem), r)
}

// ResultExists checks if a problem has saved results.
func (s *Storage) ResultExists(name string) bool {
	if checkName("problem", name) != nil {
		return false
	}
	_, err := os.Stat(s.resultPath(name))
	return err == nil
}

// DeleteResult removes the saved results of a problem, if any.
func (s *Storage) DeleteResult(name string) error {
	if err := checkName("problem", name); err != nil {
		return err
	}
	if err := os.Remove(s.resultPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete results: %w", err)
	}
	return nil
}
