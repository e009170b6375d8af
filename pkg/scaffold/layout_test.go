package scaffold_test

import (
	"testing"

	"github.com/aretw0/seedbed/pkg/domain"
	"github.com/aretw0/seedbed/pkg/scaffold"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLayout(t *testing.T) {
	layout := scaffold.DefaultLayout("churn")

	assert.Contains(t, layout, "src/churn/__init__.py")
	assert.Contains(t, layout, "src/churn/utils/common.py")
	assert.Contains(t, layout, "config/config.yaml")
	assert.Contains(t, layout, "research/trials.ipynb")
	assert.Equal(t, ".github/workflows/.gitkeep", layout[0])
	assert.Equal(t, domain.KindDirectory, domain.ClassifyPath(layout[0]))
}

func TestDefaultLayout_DefaultProject(t *testing.T) {
	assert.Contains(t, scaffold.DefaultLayout(""), "src/"+scaffold.DefaultProject+"/__init__.py")
}

func TestManifest_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		manifest scaffold.Manifest
		override string
		want     []string
	}{
		{
			name:     "placeholder expands to manifest project",
			manifest: scaffold.Manifest{Project: "churn", Paths: []string{"src/{project}/x.py", "data/"}},
			want:     []string{"src/churn/x.py", "data/"},
		},
		{
			name:     "override wins",
			manifest: scaffold.Manifest{Project: "churn", Paths: []string{"src/{project}"}},
			override: "fraud",
			want:     []string{"src/fraud"},
		},
		{
			name:     "missing project uses default",
			manifest: scaffold.Manifest{Paths: []string{"{project}.md"}},
			want:     []string{scaffold.DefaultProject + ".md"},
		},
		{
			name:     "no paths falls back to default layout",
			manifest: scaffold.Manifest{Project: "churn"},
			want:     scaffold.DefaultLayout("churn"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.manifest.Resolve(tt.override))
		})
	}
}
