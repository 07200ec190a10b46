package ip

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/ofs/ofss-config/log"
)

// Runner executes the ip-deploy tool for one IP.
type Runner interface {
	Run(ipType string, args []string) error
}

// ExecRunner runs ip-deploy as a child process and waits for it to exit.
type ExecRunner struct {
	// Binary defaults to DeployCommand, resolved through $PATH.
	Binary string
	// Dir is the working directory of the child process.
	Dir string
}

func (r ExecRunner) Run(ipType string, args []string) error {
	binary := r.Binary
	if binary == "" {
		binary = DeployCommand
	}
	log.Debug("Running '%s %s'.\n", binary, strings.Join(args, " "))

	var output bytes.Buffer
	cmd := exec.Command(binary, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	if !log.Verbose {
		log.Spinner.Suffix = fmt.Sprintf(" Deploying %s", ipType)
		log.Spinner.Start()
	}
	err := cmd.Run()
	if !log.Verbose {
		log.Spinner.Stop()
	}

	if err != nil || log.Verbose {
		log.Log("%s", output.String())
	}
	return errors.Wrapf(err, "'%s' failed", binary)
}

// DryRunner only reports the command it would run.
type DryRunner struct{}

func (DryRunner) Run(ipType string, args []string) error {
	log.Log("Would run: %s %s\n", DeployCommand, strings.Join(args, " "))
	return nil
}
