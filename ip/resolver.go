package ip

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ofs/ofss-config/assets"
	"github.com/ofs/ofss-config/ofss"
	"github.com/ofs/ofss-config/util"
)

// DeployCommand is the name of the Quartus tool that writes .ip files.
const DeployCommand = "ip-deploy"

// Resolver turns the configuration of one IP instance into an ip-deploy invocation.
// The driver calls the steps in the order GatherSettings, Validate, ResolveParameters,
// Summarize, Emit.
type Resolver interface {
	// Name identifies the IP kind in messages, e.g. "PCIe".
	Name() string
	GatherSettings() error
	Validate() error
	ResolveParameters() error
	Summarize()
	Emit(runner Runner) error

	// IPFile is the .ip file written by Emit.
	IPFile() string
	// Artifacts are the files and directories a previous run may have left behind.
	Artifacts() []string
	Parameters() *ParameterMap
	Preset() string
	Component() string
	DeployArgs() []string
	CommandArgs() []string
	CommandLine() string
	QsysGenerateHint() string
}

// deployment holds what every IP kind shares: where its output goes and how the
// ip-deploy command line is assembled.
type deployment struct {
	ipType       string
	component    string
	instanceName string
	outputName   string
	ipPath       string
	preset       string
	searchPath   string

	project *ofss.ProjectSettings
	params  *ParameterMap
}

func newDeployment(ipType, component string, project *ofss.ProjectSettings, root string, subdir ...string) deployment {
	return deployment{
		ipType:     ipType,
		component:  component,
		ipPath:     filepath.Join(append([]string{root}, subdir...)...),
		searchPath: root + "/**/*,$",
		project:    project,
		params:     NewParameterMap(),
	}
}

func (d *deployment) Name() string {
	return d.ipType
}

func (d *deployment) Component() string {
	return d.component
}

func (d *deployment) Preset() string {
	return d.preset
}

func (d *deployment) Parameters() *ParameterMap {
	return d.params
}

func (d *deployment) outputBase() string {
	return filepath.Join(d.ipPath, d.outputName)
}

func (d *deployment) IPFile() string {
	return d.outputBase() + ".ip"
}

func (d *deployment) Artifacts() []string {
	return []string{d.IPFile(), d.outputBase()}
}

func (d *deployment) errorf(kind ofss.Kind, format string, a ...interface{}) error {
	return ofss.Errorf(kind, d.ipType, format, a...)
}

// requireSetting reads a mandatory key from the instance's [settings] section.
func (d *deployment) requireSetting(settings *ofss.Section, key string) (string, error) {
	if settings == nil {
		return "", d.errorf(ofss.MissingSetting, "[%s] section not found", ofss.SettingsSection)
	}
	value, ok := settings.Get(key)
	if !ok {
		return "", d.errorf(ofss.MissingSetting, "'%s' not found in [%s]", key, ofss.SettingsSection)
	}
	return value, nil
}

type deployArg struct {
	flag string
	// key is the parameter name of a --component-parameter argument.
	key    string
	value  string
	quoted bool
}

func (a deployArg) exec() string {
	if a.key != "" {
		return fmt.Sprintf("%s=%s=%s", a.flag, a.key, a.value)
	}
	return a.flag + "=" + a.value
}

func (a deployArg) shell() string {
	switch {
	case !a.quoted:
		return a.exec()
	case a.key != "":
		return fmt.Sprintf(`%s=%s="%s"`, a.flag, a.key, a.value)
	default:
		return fmt.Sprintf(`%s="%s"`, a.flag, a.value)
	}
}

func (d *deployment) deployArgs() []deployArg {
	args := []deployArg{
		{flag: "--family", value: d.project.Family},
		{flag: "--part", value: d.project.Part, quoted: true},
		{flag: "--search-path", value: d.searchPath, quoted: true},
	}
	if d.outputName != "" {
		args = append(args, deployArg{flag: "--output-name", value: d.outputName, quoted: true})
	}
	if d.component != "" {
		args = append(args, deployArg{flag: "--component-name", value: d.component, quoted: true})
	}
	if d.instanceName != "" {
		args = append(args, deployArg{flag: "--instance-name", value: d.instanceName, quoted: true})
	}
	args = append(args, deployArg{flag: "--output-directory", value: d.ipPath})
	if d.preset != "" {
		args = append(args, deployArg{flag: "--preset", value: d.preset, quoted: true})
	}
	for _, p := range d.params.Entries() {
		args = append(args, deployArg{flag: "--component-parameter", key: p.Name, value: FormatValue(p.Value), quoted: true})
	}
	return args
}

// DeployArgs returns the ip-deploy arguments for direct execution, without shell quoting.
func (d *deployment) DeployArgs() []string {
	return util.MappedSlice(d.deployArgs(), deployArg.exec)
}

// CommandArgs returns the ip-deploy invocation the way an operator would type it,
// starting with the command name.
func (d *deployment) CommandArgs() []string {
	return append([]string{DeployCommand}, util.MappedSlice(d.deployArgs(), deployArg.shell)...)
}

func (d *deployment) CommandLine() string {
	return strings.Join(d.CommandArgs(), " ")
}

func (d *deployment) Emit(runner Runner) error {
	if err := runner.Run(d.ipType, d.DeployArgs()); err != nil {
		return d.errorf(ofss.ExternalCommandFailure, "IP Deploy Failed!! %s", err)
	}
	return nil
}

func (d *deployment) QsysGenerateHint() string {
	var b strings.Builder
	err := assets.Templates.ExecuteTemplate(&b, assets.QsysGenerateTemplate, assets.QsysGenerateParams{
		IPFile:     d.IPFile(),
		OutputDir:  d.ipPath,
		SearchPath: d.searchPath,
	})
	if err != nil {
		return ""
	}
	return b.String()
}
