package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ofs/ofss-config/manifest"
	"github.com/ofs/ofss-config/workspace"
)

func TestWriteManifestRecordsRevision(t *testing.T) {
	buf := captureLog(t)
	target := t.TempDir()
	p := filepath.Join(t.TempDir(), "manifest.yaml")
	ofssFiles = []string{"base.ofss,pcie.ofss"}
	t.Cleanup(func() { ofssFiles = []string{} })

	first := &workspace.Revision{Hash: "0123456789abcdef0123", Branch: "main"}
	writeManifest(p, target, first, nil)

	m, err := manifest.Read(p)
	require.NoError(t, err)
	require.Equal(t, first, m.Revision)
	require.Equal(t, []string{"base.ofss", "pcie.ofss"}, m.Inputs)
	require.Equal(t, toolVersion, m.ToolVersion)

	writeManifest(p, target, &workspace.Revision{Hash: "fedcba9876543210fedc", Branch: "main"}, nil)
	require.Contains(t, buf.String(), "Target revision changed.\n")

	m, err = manifest.Read(p)
	require.NoError(t, err)
	require.Equal(t, "fedcba9876543210fedc", m.Revision.Hash)
}

func TestTargetRevisionOutsideRepository(t *testing.T) {
	target := t.TempDir()
	if _, err := workspace.CurrentRevision(target); err != workspace.ErrNoRepository {
		t.Skip("temporary directory is inside a git repository")
	}
	require.Nil(t, targetRevision(target))
}
