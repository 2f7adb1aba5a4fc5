package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintContainers(t *testing.T) {
	const digest = "alpine@sha256:0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	warnings := LintContainers(CapabilityContainerMap{
		"python":  {"submitty/python:3.12", "python"},
		"default": {"Repo/Bad Name", "submitty/autograding-default:latest"},
		"alpine":  {digest},
	})

	require.Len(t, warnings, 3)

	assert.ErrorIs(t, warnings[0], ErrUnmatchableContainerRef)
	assert.Equal(t, digest, warnings[0].Identifier)
	assert.Equal(t, "capability alpine: pinned by digest docker.io/library/"+digest, warnings[0].Detail)

	assert.ErrorIs(t, warnings[1], ErrInvalidContainerRef)
	assert.Equal(t, "Repo/Bad Name", warnings[1].Identifier)
	assert.Equal(t, "capability default", warnings[1].Detail)

	assert.ErrorIs(t, warnings[2], ErrUnmatchableContainerRef)
	assert.Equal(t, "python", warnings[2].Identifier)
	assert.Equal(t, "capability python: no tag, normalizes to docker.io/library/python:latest", warnings[2].Detail)
}

func TestLintContainers_Clean(t *testing.T) {
	assert.Empty(t, LintContainers(mixedSnapshot().Containers))
}

func TestReconcile_UntaggedContainerRef(t *testing.T) {
	snap := scenarioSnapshot()
	snap.Containers["python"] = append(snap.Containers["python"], "python")

	view, err := Reconcile(snap)
	require.NoError(t, err)

	require.Len(t, view.Warnings, 1)
	assert.ErrorIs(t, view.Warnings[0], ErrUnmatchableContainerRef)
	assert.Equal(t, []string{"python"}, view.AutogradingContainers.NotFound)
}
