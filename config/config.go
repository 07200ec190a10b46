package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ofs/ofss-config/log"
)

// Setting names, shared by flags, the configuration file and OFSS_* environment variables.
const (
	KeyTarget     = "target"
	KeyIPDeploy   = "ip-deploy"
	KeyCommandLog = "command-log"
)

const (
	toolName       = "ofss-config"
	configFileName = "ofss-config"
	envPrefix      = "OFSS"
	rootDirEnv     = "OFS_ROOTDIR"
)

type Config struct {
	// Target is the output root the IP files are written to.
	Target string `mapstructure:"target"`
	// IPDeploy is the ip-deploy binary.
	IPDeploy string `mapstructure:"ip-deploy"`
	// CommandLog is the file receiving the ip-deploy commands in debug mode.
	CommandLog string `mapstructure:"command-log"`
}

func configDir() (string, error) {
	if dir, ok := os.LookupEnv("OFSS_CONFIG_DIR"); ok {
		return dir, nil
	}

	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, toolName), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "unable to locate the configuration directory")
	}
	return filepath.Join(homeDir, ".config", toolName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyIPDeploy, "ip-deploy")
	v.SetDefault(KeyCommandLog, "ip_deploy_cmds.log")

	// OFSS_TARGET wins over OFS_ROOTDIR.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(KeyTarget, rootDirEnv)

	dir, err := configDir()
	if err != nil {
		log.Debug("%s. Using default configuration.\n", err)
		return v
	}
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug("No configuration file in `%s`. Using default configuration.\n", dir)
		} else {
			log.Warning("Error reading configuration file in `%s`: `%s`. Using default configuration.\n", dir, err)
		}
		return v
	}
	log.Debug("Loaded configuration from `%s`.\n", v.ConfigFileUsed())
	return v
}

// Load resolves the configuration from, in order of precedence, the flags that were set on
// the command line, OFSS_* environment variables, OFS_ROOTDIR, the configuration file and
// the built-in defaults.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	log.Debug("Running with configuration: %+v\n", cfg)
	return &cfg, nil
}

// TargetRoot returns the absolute output root.
func (c *Config) TargetRoot() (string, error) {
	if c.Target == "" {
		return "", errors.Errorf("$%s environment variable is not defined", rootDirEnv)
	}
	target, err := homedir.Expand(c.Target)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand '%s'", c.Target)
	}
	return filepath.Abs(target)
}
