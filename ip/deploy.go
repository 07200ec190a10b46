package ip

import (
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ofs/ofss-config/assets"
	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/ofss"
	"github.com/ofs/ofss-config/util"
)

// Instantiate creates a resolver for every configured IP, in deployment order: IOPLL first so
// that its clock is known, then every PCIe instance, the memory subsystem and its simulation
// model, and HSSI.
func Instantiate(cfg ofss.MergedConfig, project *ofss.ProjectSettings, root string) ([]Resolver, error) {
	if !util.DirExists(root) {
		return nil, ofss.Errorf(ofss.MissingFile, "", "Target root \"%s\" does not exist or is not a directory", root)
	}

	var resolvers []Resolver
	for _, inst := range cfg[ofss.TypeIOPLL] {
		resolvers = append(resolvers, NewIOPLL(project, inst, root))
	}
	for _, inst := range cfg[ofss.TypePCIe] {
		resolvers = append(resolvers, NewPCIe(project, inst, root))
	}
	for _, inst := range cfg[ofss.TypeMemory] {
		resolvers = append(resolvers, NewMemory(project, inst, root), NewSimMemory(project, inst, root))
	}
	for _, inst := range cfg[ofss.TypeHSSI] {
		resolvers = append(resolvers, NewHSSI(project, inst, root))
	}
	return resolvers, nil
}

// Options control how Deploy runs.
type Options struct {
	Runner Runner
	// DryRun resolves and prints every command without cleaning or running anything.
	DryRun bool
	// CommandLog receives one block per executed command, if set.
	CommandLog io.Writer
}

// Deploy runs every resolver to completion before moving on to the next one and returns the
// IP files that were written. It stops at the first error; files written so far are kept.
func Deploy(resolvers []Resolver, opts Options) ([]string, error) {
	runner := opts.Runner
	if opts.DryRun || runner == nil {
		runner = DryRunner{}
	}

	var updated []string
	for _, r := range resolvers {
		if err := r.GatherSettings(); err != nil {
			return updated, err
		}
		if err := r.Validate(); err != nil {
			return updated, err
		}
		if err := r.ResolveParameters(); err != nil {
			return updated, err
		}
		r.Summarize()
		log.Debug("%s\n", r.QsysGenerateHint())

		if !opts.DryRun {
			if err := clean(r); err != nil {
				return updated, err
			}
		}

		log.Log("Deploy Command:\n")
		log.Log("%s\n", r.CommandLine())
		if err := r.Emit(runner); err != nil {
			return updated, err
		}
		if !opts.DryRun {
			log.Log("=========================\n")
			log.Success("IP-Deploy for %s COMPLETED\n", r.Component())
			log.Log("=========================\n")
		}

		if opts.CommandLog != nil {
			if err := WriteCommandLog(opts.CommandLog, r); err != nil {
				return updated, err
			}
		}
		updated = append(updated, r.IPFile())
	}
	return updated, nil
}

// clean removes the IP file and generation directory of a previous run, so that work trees
// get a fresh copy rather than an update through a link into the source repository.
func clean(r Resolver) error {
	log.Debug("Going to clean the following: %s\n", strings.Join(r.Artifacts(), ", "))
	for _, artifact := range r.Artifacts() {
		if !util.PathExists(artifact) {
			continue
		}
		log.Debug("Removing '%s'.\n", artifact)
		if err := util.RemovePath(artifact); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommandLog appends the ip-deploy command of a resolver to the command log.
func WriteCommandLog(w io.Writer, r Resolver) error {
	err := assets.Templates.ExecuteTemplate(w, assets.DeployCommandTemplate, assets.DeployCommandParams{
		Name: r.Name(),
		Args: r.CommandArgs(),
	})
	return errors.Wrapf(err, "failed to write the %s command log", r.Name())
}
