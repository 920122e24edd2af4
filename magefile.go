//go:build mage

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	Go = "go"

	mainPackage = "./cmd/credentialservice"
	binary      = filepath.Join("bin", "credential-service")
)

// Build builds the service binary into bin/.
func Build() error {
	fmt.Println("Building...")
	if err := sh.Run(Go, "build", "./..."); err != nil {
		return err
	}
	return sh.Run(Go, "build", "-o", binary, mainPackage)
}

// Clean deletes any build artifacts.
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll("bin")
	os.Remove("coverage.out")
}

// Run starts the service locally with the default config, or CONFIG_PATH when set.
func Run() error {
	return runGo(mainPackage)
}

// Test runs unit tests without coverage.
// The mage `-v` option will trigger a verbose output of the test
func Test() error {
	return runTests()
}

// CITest runs unit tests with coverage as a part of CI.
// The mage `-v` option will trigger a verbose output of the test
func CITest() error {
	return runTests("-covermode=atomic", "-coverprofile=coverage.out")
}

// Spec regenerates the OpenAPI document in doc/ from code annotations.
func Spec() error {
	swagCommand := "swag"
	if err := installIfNotPresent(swagCommand, "github.com/swaggo/swag/cmd/swag@latest"); err != nil {
		logrus.Fatal(err)
		return err
	}
	return sh.Run(swagCommand, "init", "-g", "cmd/credentialservice/main.go", "--pd", "-o", "doc", "-ot", "go,yaml")
}

func runTests(extraTestArgs ...string) error {
	args := []string{"test"}
	if mg.Verbose() {
		args = append(args, "-v")
	}
	args = append(args, "-race")
	args = append(args, extraTestArgs...)
	args = append(args, "./...")
	testEnv := map[string]string{
		"CGO_ENABLED": "1",
		"GO111MODULE": "on",
	}
	writer := ColorizeTestStdout()
	fmt.Printf("%+v\n", args)
	_, err := sh.Exec(testEnv, writer, os.Stderr, Go, args...)
	return err
}

func ColorizeTestOutput(w io.Writer) io.Writer {
	writer := NewRegexpWriter(w, `PASS.*`, "\033[32m$0\033[0m")
	return NewRegexpWriter(writer, `FAIL.*`, "\033[31m$0\033[0m")
}

func ColorizeTestStdout() io.Writer {
	if terminal.IsTerminal(syscall.Stdout) {
		return ColorizeTestOutput(os.Stdout)
	}
	return os.Stdout
}

type regexpWriter struct {
	inner io.Writer
	re    *regexp.Regexp
	repl  []byte
}

func NewRegexpWriter(inner io.Writer, re string, repl string) io.Writer {
	return &regexpWriter{inner, regexp.MustCompile(re), []byte(repl)}
}

func (w *regexpWriter) Write(p []byte) (int, error) {
	r := w.re.ReplaceAll(p, w.repl)
	n, err := w.inner.Write(r)
	if n > len(r) {
		n = len(r)
	}
	return n, err
}

func runGo(cmd string, args ...string) error {
	return sh.RunV(findOnPathOrGoPath(Go), append([]string{"run", cmd}, args...)...)
}

// installIfNotPresent installs a go based tool (if not already installed)
func installIfNotPresent(execName, goPackage string) error {
	if len(findOnPathOrGoPath(execName)) != 0 {
		return nil
	}
	usr, err := user.Current()
	if err != nil {
		return err
	}
	fmt.Printf("Attempting to install %s\n", execName)
	cmd := exec.Command(Go, "install", goPackage)
	cmd.Dir = usr.HomeDir
	return cmd.Run()
}

func findOnPathOrGoPath(execName string) string {
	if p := findOnPath(execName); p != "" {
		return p
	}
	p := filepath.Join(goPath(), "bin", execName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	fmt.Printf("Could not find %s on PATH or in GOPATH/bin\n", execName)
	return ""
}

func findOnPath(execName string) string {
	for _, dir := range strings.Split(os.Getenv("PATH"), string(os.PathListSeparator)) {
		possible := filepath.Join(dir, execName)
		if stat, err := os.Stat(possible); err == nil && stat.Mode()&0111 != 0 {
			return possible
		}
	}
	return ""
}

func goPath() string {
	if goPath, ok := os.LookupEnv("GOPATH"); ok {
		return goPath
	}
	usr, err := user.Current()
	if err != nil {
		logrus.Fatal(err)
		return ""
	}
	return filepath.Join(usr.HomeDir, Go)
}

// CBT runs clean; build; test.
func CBT() error {
	Clean()
	if err := Build(); err != nil {
		return err
	}
	return Test()
}
