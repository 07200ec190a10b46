package ofss

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/exp/slices"
	"gopkg.in/ini.v1"

	"github.com/ofs/ofss-config/log"
	"github.com/ofs/ofss-config/util"
)

const (
	ipSectionName      = "ip"
	includeSectionName = "include"
	ipTypeKey          = "type"
)

// Repeated sections and keys are kept apart by the parser so that parseFile can reject them.
var loadOptions = ini.LoadOptions{
	AllowBooleanKeys:           true,
	IgnoreInlineComment:        true,
	AllowPythonMultilineValues: true,
	PreserveSurroundedQuote:    true,
	AllowNonUniqueSections:     true,
	AllowShadows:               true,
	AllowDuplicateShadowValues: true,
}

// ofssFile is the parsed content of a single OFSS file.
type ofssFile struct {
	path     string
	ipType   string
	includes []string
	instance *Instance
}

// Load reads the given OFSS files and every file they include, breadth first, and merges
// them by IP type. Each argument may hold a comma-separated list of files. A file that was
// already processed is skipped, which makes include cycles harmless.
func Load(paths []string) (MergedConfig, error) {
	queue := []string{}
	for _, p := range util.SplitList(paths) {
		absPath, err := resolvePath(p)
		if err != nil {
			return nil, err
		}
		queue = append(queue, absPath)
	}

	merged := MergedConfig{}
	processed := map[string]bool{}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !util.FileExists(current) {
			return nil, Errorf(MissingFile, "", "%s not found", current)
		}
		if processed[current] {
			log.Debug("Skipping '%s', it was already processed.\n", current)
			continue
		}

		log.Debug("Reading OFSS file '%s'.\n", current)
		file, err := parseFile(current)
		if err != nil {
			return nil, err
		}

		for _, include := range file.includes {
			includePath, err := resolvePath(include)
			if err != nil {
				return nil, err
			}
			if !processed[includePath] {
				log.Debug("Queueing included file '%s'.\n", includePath)
				queue = append(queue, includePath)
			}
		}

		if file.ipType != "" {
			merged[file.ipType] = append(merged[file.ipType], file.instance)
		}
		processed[current] = true
	}

	return merged, nil
}

func parseFile(p string) (*ofssFile, error) {
	doc, err := ini.LoadSources(loadOptions, p)
	if err != nil {
		return nil, Errorf(MalformedFile, "", "failed to parse '%s': %s", p, err)
	}

	// The first section is the parser's implicit one, holding whatever precedes the first
	// header.
	sections := doc.Sections()
	if keys := sections[0].Keys(); len(keys) > 0 {
		return nil, Errorf(MalformedFile, "", "'%s' sets '%s' before the first section header", p, keys[0].Name())
	}
	sections = sections[1:]

	defaults := newSection(ini.DefaultSection)
	for _, section := range sections {
		if section.Name() != ini.DefaultSection {
			continue
		}
		for _, key := range section.Keys() {
			if defaults.Has(key.Name()) || len(key.ValueWithShadows()) > 1 {
				return nil, Errorf(MalformedFile, "", "'%s' sets '%s' more than once in [%s]", p, key.Name(), ini.DefaultSection)
			}
			defaults.set(key.Name(), key.String())
		}
	}

	file := &ofssFile{path: p, instance: newInstance(p)}
	seen := map[string]bool{}

	for _, section := range sections {
		name := section.Name()
		if name == ini.DefaultSection {
			continue
		}
		if seen[name] {
			return nil, Errorf(MalformedFile, "", "'%s' has more than one [%s] section", p, name)
		}
		seen[name] = true

		s := newSection(name)
		for _, key := range defaults.Keys() {
			value, _ := defaults.Get(key)
			s.set(key, value)
		}
		own := []string{}
		for _, key := range section.Keys() {
			if len(key.ValueWithShadows()) > 1 {
				return nil, Errorf(MalformedFile, "", "'%s' sets '%s' more than once in [%s]", p, key.Name(), name)
			}
			s.set(key.Name(), key.String())
			own = append(own, key.Name())
		}

		switch name {
		case ipSectionName:
			ipType, ok := s.Get(ipTypeKey)
			if !ok {
				return nil, Errorf(MissingSetting, "", "'%s' has an [%s] section without '%s'", p, ipSectionName, ipTypeKey)
			}
			file.ipType = strings.ToLower(ipType)
		case includeSectionName:
			// Listed files come first, then inherited defaults.
			for _, key := range append(own, defaults.Keys()...) {
				include := strings.ReplaceAll(util.ExpandVars(key), `"`, "")
				if !slices.Contains(file.includes, include) {
					file.includes = append(file.includes, include)
				}
			}
		default:
			file.instance.add(s)
		}
	}

	return file, nil
}

func resolvePath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", Errorf(MissingFile, "", "failed to expand '%s': %s", p, err)
	}
	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", Errorf(MissingFile, "", "failed to resolve '%s': %s", p, err)
	}
	return absPath, nil
}
