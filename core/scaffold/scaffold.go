// Package scaffold creates a new bot project on disk: a local environment
// directory, a .gitignore rendered from a template, and a package directory
// with skeleton source files. Steps are not transactional; a failure leaves
// whatever was already written.
package scaffold

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samedamci/telegrask/core/logger"
)

// EnvDirName is the fixed name of the local environment directory created
// next to the project package and referenced by the .gitignore template.
const EnvDirName = "env"

// envDirToken is the placeholder substituted in the gitignore template.
const envDirToken = "__ENV_DIR"

//go:embed templates
var templates embed.FS

// Options declare what the scaffolder should create.
type Options struct {
	// Name is the project package name; the package directory is created
	// under Dir with this name.
	Name string
	// Dir is the app root the scaffold is written into. Empty means the
	// current directory.
	Dir string

	Env       bool
	Gitignore bool
}

// Error reports a failed scaffold step together with the underlying OS cause.
type Error struct {
	Step string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("scaffold %s: %s: %v", e.Step, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Run executes the scaffold steps in order: environment directory,
// .gitignore, package directory. Each failure is fatal and aborts the
// remaining steps.
func Run(opts Options) error {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return &Error{Step: "validate", Path: opts.Name, Err: fmt.Errorf("project name is required")}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." || name != filepath.Base(name) {
		return &Error{Step: "validate", Path: opts.Name, Err: fmt.Errorf("project name must be a bare directory name")}
	}

	root := opts.Dir
	if root == "" {
		root = "."
	}

	if opts.Env {
		if err := createEnv(root); err != nil {
			return err
		}
	}
	if opts.Gitignore {
		if err := writeGitignore(root); err != nil {
			return err
		}
	}
	return createPackage(root, name)
}

func createEnv(root string) error {
	path := filepath.Join(root, EnvDirName)
	if err := os.Mkdir(path, 0o755); err != nil {
		return &Error{Step: "env", Path: path, Err: err}
	}
	if err := os.Mkdir(filepath.Join(path, "bin"), 0o755); err != nil {
		return &Error{Step: "env", Path: filepath.Join(path, "bin"), Err: err}
	}
	logger.Scaffold.Info("environment created", slog.String("path", path))
	return nil
}

func writeGitignore(root string) error {
	tpl, err := readTemplate("gitignore")
	if err != nil {
		return &Error{Step: "gitignore", Path: "templates/gitignore", Err: err}
	}
	path := filepath.Join(root, ".gitignore")
	content := strings.ReplaceAll(tpl, envDirToken, EnvDirName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &Error{Step: "gitignore", Path: path, Err: err}
	}
	logger.Scaffold.Info("gitignore written", slog.String("path", path))
	return nil
}

// packageFiles maps template names to the file names written into the
// project package. Contents are copied byte-for-byte.
var packageFiles = []struct {
	template string
	target   string
}{
	{"main.go.tmpl", "main.go"},
	{"config.go.tmpl", "config.go"},
	{"commands.go.tmpl", "commands.go"},
}

func createPackage(root, name string) error {
	dir := filepath.Join(root, name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return &Error{Step: "package", Path: dir, Err: err}
	}
	for _, f := range packageFiles {
		content, err := readTemplate(f.template)
		if err != nil {
			return &Error{Step: "package", Path: "templates/" + f.template, Err: err}
		}
		path := filepath.Join(dir, f.target)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return &Error{Step: "package", Path: path, Err: err}
		}
	}
	logger.Scaffold.Info("package created",
		slog.String("path", dir),
		slog.Int("files", len(packageFiles)),
	)
	return nil
}

func readTemplate(name string) (string, error) {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
