package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("OFSS_CONFIG_DIR", dir)
	t.Setenv("OFS_ROOTDIR", "")
	os.Unsetenv("OFS_ROOTDIR")
	os.Unsetenv("OFSS_TARGET")
	os.Unsetenv("OFSS_IP_DEPLOY")
	os.Unsetenv("OFSS_COMMAND_LOG")
	return dir
}

func flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyTarget, "", "")
	flags.String(KeyIPDeploy, "ip-deploy", "")
	flags.String(KeyCommandLog, "ip_deploy_cmds.log", "")
	return flags
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(flagSet())
	require.NoError(t, err)
	require.Equal(t, "ip-deploy", cfg.IPDeploy)
	require.Equal(t, "ip_deploy_cmds.log", cfg.CommandLog)

	_, err = cfg.TargetRoot()
	require.Error(t, err)
	require.Contains(t, err.Error(), "OFS_ROOTDIR")
}

func TestTargetFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OFS_ROOTDIR", "/work/ofs")

	cfg, err := Load(flagSet())
	require.NoError(t, err)
	require.Equal(t, "/work/ofs", cfg.Target)

	t.Setenv("OFSS_TARGET", "/work/other")
	cfg, err = Load(flagSet())
	require.NoError(t, err)
	require.Equal(t, "/work/other", cfg.Target)
}

func TestFlagsWin(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OFS_ROOTDIR", "/work/ofs")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ofss-config.yaml"), []byte("ip-deploy: /opt/quartus/bin/ip-deploy\n"), 0664))

	flags := flagSet()
	require.NoError(t, flags.Parse([]string{"--target", "/work/tree"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, "/work/tree", cfg.Target)
	require.Equal(t, "/opt/quartus/bin/ip-deploy", cfg.IPDeploy)

	root, err := cfg.TargetRoot()
	require.NoError(t, err)
	require.Equal(t, "/work/tree", root)
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ofss-config.yaml"), []byte("target: /work/from-file\ncommand-log: deploy.log\n"), 0664))

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "/work/from-file", cfg.Target)
	require.Equal(t, "deploy.log", cfg.CommandLog)
	require.Equal(t, "ip-deploy", cfg.IPDeploy)

	t.Setenv("OFSS_COMMAND_LOG", "env.log")
	cfg, err = Load(nil)
	require.NoError(t, err)
	require.Equal(t, "env.log", cfg.CommandLog)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("OFSS_CONFIG_DIR", "")
	os.Unsetenv("OFSS_CONFIG_DIR")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	dir, err := configDir()
	require.NoError(t, err)
	require.Equal(t, "/xdg/ofss-config", dir)
}
